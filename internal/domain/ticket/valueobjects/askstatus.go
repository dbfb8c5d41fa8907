package valueobjects

import "fmt"

// AskStatus is a contact's response to a ticket ask.
type AskStatus string

const (
	AskUnknown   AskStatus = "unknown"
	AskRejected  AskStatus = "rejected"
	AskAgreed    AskStatus = "agreed"
	AskDelivered AskStatus = "delivered"
	AskFailed    AskStatus = "failed"
	AskGhosted   AskStatus = "ghosted"
)

var validAskStatuses = map[AskStatus]bool{
	AskUnknown:   true,
	AskRejected:  true,
	AskAgreed:    true,
	AskDelivered: true,
	AskFailed:    true,
	AskGhosted:   true,
}

// AcceptedAskStatuses count as an accepted offer.
var AcceptedAskStatuses = []AskStatus{AskAgreed, AskDelivered}

// RejectedAskStatuses count as a declined offer.
var RejectedAskStatuses = []AskStatus{AskRejected, AskFailed, AskGhosted}

func (s AskStatus) String() string {
	return string(s)
}

func (s AskStatus) IsValid() bool {
	return validAskStatuses[s]
}

func (s AskStatus) IsAccepted() bool {
	return s == AskAgreed || s == AskDelivered
}

func (s AskStatus) IsRejected() bool {
	return s == AskRejected || s == AskFailed || s == AskGhosted
}

func NewAskStatus(value string) (AskStatus, error) {
	s := AskStatus(value)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid ask status: %s", value)
	}
	return s, nil
}

var askStatusLabels = map[AskStatus]string{
	AskUnknown:   "Unknown",
	AskRejected:  "Rejected",
	AskAgreed:    "Agreed",
	AskDelivered: "Delivered",
	AskFailed:    "Failed",
	AskGhosted:   "Ghosted",
}

// Label is the human readable name shown next to the code.
func (s AskStatus) Label() string {
	return askStatusLabels[s]
}
