package domain

// Tone is the colour family used to render a status indicator.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneWarning
	ToneInfo
	ToneSuccess
)

var statusTones = [...]Tone{
	StatusPending:    ToneWarning,
	StatusInProgress: ToneInfo,
	StatusCompleted:  ToneSuccess,
}

// Fails to compile when a status is added without a tone.
func _() {
	var x [1]struct{}
	_ = x[len(statusTones)-int(statusCount)]
}

// StatusTone maps a status to its indicator tone. Values outside the
// enumeration render neutral.
func StatusTone(s Status) Tone {
	if !s.Valid() {
		return ToneNeutral
	}
	return statusTones[s]
}

// Hex returns the indicator colour.
func (t Tone) Hex() string {
	switch t {
	case ToneWarning:
		return "#FFA726"
	case ToneInfo:
		return "#42A5F5"
	case ToneSuccess:
		return "#66BB6A"
	default:
		return "#BDBDBD"
	}
}

func (t Tone) String() string {
	switch t {
	case ToneWarning:
		return "warning"
	case ToneInfo:
		return "info"
	case ToneSuccess:
		return "success"
	default:
		return "neutral"
	}
}
