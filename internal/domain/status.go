package domain

import "fmt"

// Status is the lifecycle of the most recent or in-flight fetch.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StatusIdle
	case "loading":
		*s = StatusLoading
	case "succeeded":
		*s = StatusSucceeded
	case "failed":
		*s = StatusFailed
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}
