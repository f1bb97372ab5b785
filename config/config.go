package config

import (
	"encoding/json"
	"os"
	"time"
)

// Config holds runtime configuration for the console. Fields are loaded from
// a JSON file; missing file means defaults.
type Config struct {
	Debug bool `json:"debug"`

	// Backend connectivity
	BackendURL     string `json:"backend_url"`
	APIKey         string `json:"api_key"`
	TimeoutSeconds int    `json:"timeout_seconds"`

	// Detection queue refresh
	RefreshMinutes int `json:"refresh_minutes"`
	QueueLimit     int `json:"queue_limit"`

	// Local resources
	CamerasPath string `json:"cameras_path"`
	AuditDBPath string `json:"audit_db_path"`

	// Editor stage box; the stage itself is fitted to the screenshot's
	// aspect ratio within these bounds.
	StageMaxWidth  int `json:"stage_max_width"`
	StageMaxHeight int `json:"stage_max_height"`

	// Last camera the operator worked on, restored on startup.
	LastCameraID string `json:"last_camera_id"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		BackendURL:     "http://localhost:8000",
		TimeoutSeconds: 30,
		RefreshMinutes: 5,
		QueueLimit:     50,
		CamerasPath:    "cameras.yaml",
		AuditDBPath:    "review_audit.db",
		StageMaxWidth:  800,
		StageMaxHeight: 450,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		c.BackendURL = "http://localhost:8000"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.RefreshMinutes <= 0 {
		c.RefreshMinutes = 5
	}
	if c.QueueLimit <= 0 || c.QueueLimit > 500 {
		c.QueueLimit = 50
	}
	if c.StageMaxWidth < 200 {
		c.StageMaxWidth = 800
	}
	if c.StageMaxHeight < 120 {
		c.StageMaxHeight = 450
	}
	return nil
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RefreshInterval returns the queue auto-refresh interval.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshMinutes) * time.Minute
}

// Load attempts to read configuration from the given JSON file path. If the
// file does not exist it returns DefaultConfig(). On JSON error it returns
// defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
