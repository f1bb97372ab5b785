package detection

import "time"

// ProcessingStatus enumerates the pipeline stages the UI can render. It is
// derived fresh from record fields on every use, never stored.
type ProcessingStatus int

const (
	StatusUnknown ProcessingStatus = iota
	StatusAnalyzing
	StatusFoodClassified
	StatusInitialOCRComplete
	StatusComplete
	StatusAIError
)

func (s ProcessingStatus) String() string {
	switch s {
	case StatusAnalyzing:
		return "analyzing"
	case StatusFoodClassified:
		return "food_classified"
	case StatusInitialOCRComplete:
		return "initial_ocr_complete"
	case StatusComplete:
		return "complete"
	case StatusAIError:
		return "ai_error"
	default:
		return "unknown"
	}
}

// ParseProcessingStatus maps a backend-supplied status string to a
// ProcessingStatus. Unrecognized values map to StatusUnknown; the UI must
// never crash on them.
func ParseProcessingStatus(s string) ProcessingStatus {
	switch s {
	case "analyzing":
		return StatusAnalyzing
	case "food_classified":
		return StatusFoodClassified
	case "initial_ocr_complete":
		return StatusInitialOCRComplete
	case "complete":
		return StatusComplete
	case "ai_error":
		return StatusAIError
	default:
		return StatusUnknown
	}
}

// Terminal reports whether the pipeline will make no further progress.
func (s ProcessingStatus) Terminal() bool {
	return s == StatusComplete || s == StatusAIError
}

// DeriveStatus computes the display status for a record. An explicit backend
// status overrides field inference unconditionally.
func DeriveStatus(d Detection) ProcessingStatus {
	if d.PipelineStatus != "" {
		return ParseProcessingStatus(d.PipelineStatus)
	}
	return DeriveFromFields(d)
}

// DeriveFromFields infers the stage from which fields the pipeline has
// populated so far. A present final weight means complete no matter what the
// other fields say.
func DeriveFromFields(d Detection) ProcessingStatus {
	if d.FinalWeight != nil {
		return StatusComplete
	}
	if d.Category == "" || d.Description == analyzingPlaceholder {
		return StatusAnalyzing
	}
	if d.InitialWeight == nil {
		return StatusFoodClassified
	}
	return StatusInitialOCRComplete
}

// StatusMismatch reports whether an explicit backend status disagrees with
// what the fields imply. Callers may log this; the explicit status still wins.
func StatusMismatch(d Detection) bool {
	if d.PipelineStatus == "" {
		return false
	}
	explicit := ParseProcessingStatus(d.PipelineStatus)
	return explicit != StatusUnknown && explicit != DeriveFromFields(d)
}

// Tone names a semantic color slot resolved by the UI theme.
type Tone string

const (
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
	ToneMuted   Tone = "muted"
)

// StatusDisplay is the fixed rendering tuple for one processing status.
type StatusDisplay struct {
	Label   string
	Spinner bool
	Tone    Tone
}

// Display maps every status to its rendering tuple. Total: unknown values get
// the generic fallback rather than failing.
func Display(s ProcessingStatus) StatusDisplay {
	switch s {
	case StatusAnalyzing:
		return StatusDisplay{Label: "Analyzing frame", Spinner: true, Tone: ToneInfo}
	case StatusFoodClassified:
		return StatusDisplay{Label: "Food classified", Spinner: true, Tone: ToneInfo}
	case StatusInitialOCRComplete:
		return StatusDisplay{Label: "Initial weight read", Spinner: true, Tone: ToneWarning}
	case StatusComplete:
		return StatusDisplay{Label: "Complete", Spinner: false, Tone: ToneSuccess}
	case StatusAIError:
		return StatusDisplay{Label: "AI error", Spinner: false, Tone: ToneDanger}
	default:
		return StatusDisplay{Label: "Unknown Status", Spinner: false, Tone: ToneMuted}
	}
}

const (
	// Auto-close delays measured from the moment a terminal status is shown.
	noWasteAutoClose = 1 * time.Second
	defaultAutoClose = 10 * time.Second
)

// AutoCloseDelay returns the modal auto-close delay for a record in the given
// status. The second return is false while the pipeline is still running, in
// which case no timer may be armed.
func AutoCloseDelay(s ProcessingStatus, d Detection) (time.Duration, bool) {
	if !s.Terminal() {
		return 0, false
	}
	if d.Category == CategoryNoWaste {
		return noWasteAutoClose, true
	}
	return defaultAutoClose, true
}
