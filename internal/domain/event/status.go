package event

import "fmt"

// Status is the lifecycle state of an event.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

var statusLabels = map[Status]string{
	StatusDraft:     "Draft",
	StatusScheduled: "Scheduled",
	StatusCompleted: "Completed",
	StatusCanceled:  "Canceled",
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	return statusLabels[s]
}

func NewStatus(value string) (Status, error) {
	s := Status(value)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid event status: %s", value)
	}
	return s, nil
}

// CommitmentStatus is a contact's RSVP-like state for one event.
type CommitmentStatus string

const (
	CommitmentUnknown   CommitmentStatus = "unknown"
	CommitmentRejected  CommitmentStatus = "rejected"
	CommitmentCommitted CommitmentStatus = "committed"
	CommitmentMaybe     CommitmentStatus = "maybe"
	CommitmentAttended  CommitmentStatus = "attended"
	CommitmentNoShow    CommitmentStatus = "no_show"
)

var commitmentLabels = map[CommitmentStatus]string{
	CommitmentUnknown:   "Unknown",
	CommitmentRejected:  "Rejected",
	CommitmentCommitted: "Committed",
	CommitmentMaybe:     "Maybe",
	CommitmentAttended:  "Attended",
	CommitmentNoShow:    "No show",
}

func (s CommitmentStatus) String() string {
	return string(s)
}

func (s CommitmentStatus) IsValid() bool {
	_, ok := commitmentLabels[s]
	return ok
}

func (s CommitmentStatus) Label() string {
	return commitmentLabels[s]
}

func NewCommitmentStatus(value string) (CommitmentStatus, error) {
	s := CommitmentStatus(value)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid commitment status: %s", value)
	}
	return s, nil
}
