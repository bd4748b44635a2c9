package valueobjects

import "fmt"

type Status string

const (
	StatusRaised     Status = "Raised"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
	StatusClosed     Status = "Closed"
	StatusSpam       Status = "Spam"
)

// statusTransitions is the complete set of legal moves. Closed is terminal.
var statusTransitions = map[Status][]Status{
	StatusRaised:     {StatusInProgress, StatusSpam, StatusClosed},
	StatusInProgress: {StatusResolved, StatusRaised, StatusClosed},
	StatusResolved:   {StatusClosed, StatusRaised},
	StatusSpam:       {StatusClosed},
	StatusClosed:     {},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RequiresReason reports whether entering s must be justified.
func (s Status) RequiresReason() bool {
	return s == StatusClosed || s == StatusSpam
}

func (s Status) IsRaised() bool   { return s == StatusRaised }
func (s Status) IsResolved() bool { return s == StatusResolved }
func (s Status) IsClosed() bool   { return s == StatusClosed }
func (s Status) IsSpam() bool     { return s == StatusSpam }

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid complaint status: %s", s)
	}
	return st, nil
}

// AllStatuses lists every status.
func AllStatuses() []Status {
	return []Status{StatusRaised, StatusInProgress, StatusResolved, StatusClosed, StatusSpam}
}
