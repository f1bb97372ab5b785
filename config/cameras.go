package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Camera is one entry of the operator's camera roster.
type Camera struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Location string `yaml:"location"`
}

// Label returns the display name for selection widgets.
func (c Camera) Label() string {
	label := c.Name
	if label == "" {
		label = c.ID
	}
	if c.Location != "" {
		label += " (" + c.Location + ")"
	}
	return label
}

// Roster is the fleet of cameras this console manages.
type Roster struct {
	Cameras []Camera `yaml:"cameras"`
}

// LoadRoster reads the YAML camera roster. A missing file yields an empty
// roster without error; the console stays usable, just with nothing to pick.
func LoadRoster(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Roster{}, nil
		}
		return Roster{}, fmt.Errorf("read camera roster: %w", err)
	}
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Roster{}, fmt.Errorf("parse camera roster: %w", err)
	}
	for i, cam := range r.Cameras {
		if cam.ID == "" {
			return Roster{}, fmt.Errorf("camera roster entry %d has no id", i)
		}
	}
	return r, nil
}

// Camera looks up a roster entry by id.
func (r Roster) Camera(id string) (Camera, bool) {
	for _, cam := range r.Cameras {
		if cam.ID == id {
			return cam, true
		}
	}
	return Camera{}, false
}

// Names returns display labels in roster order, for selection widgets.
func (r Roster) Names() []string {
	out := make([]string, len(r.Cameras))
	for i, cam := range r.Cameras {
		out[i] = cam.Label()
	}
	return out
}
