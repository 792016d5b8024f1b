package domain

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of a task. The set is closed: the wire
// protocol only knows the three values below.
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted

	statusCount
)

var statusLabels = [...]string{
	StatusPending:    "Pendiente",
	StatusInProgress: "En Progreso",
	StatusCompleted:  "Completada",
}

// Fails to compile when a status is added without a label.
func _() {
	var x [1]struct{}
	_ = x[len(statusLabels)-int(statusCount)]
}

// Statuses returns every status in display order.
func Statuses() []Status {
	out := make([]Status, 0, statusCount)
	for s := StatusPending; s < statusCount; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s >= StatusPending && s < statusCount
}

// String returns the wire value of the status.
func (s Status) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusLabels[s]
}

// ParseStatus converts a wire value into a Status.
func ParseStatus(v string) (Status, error) {
	for s := StatusPending; s < statusCount; s++ {
		if statusLabels[s] == v {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown task status %q", v)
}

// MarshalJSON encodes the status as its wire string.
func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot encode %s", s)
	}
	return json.Marshal(statusLabels[s])
}

// UnmarshalJSON decodes a wire string into a Status.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
