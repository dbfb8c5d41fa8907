package valueobjects

import "fmt"

// TicketType classifies what a ticket asks of its contact.
type TicketType string

const (
	TypeUnknown      TicketType = "UNKNOWN"
	TypeIntroduction TicketType = "INTRODUCTION"
	TypeRecruit      TicketType = "RECRUIT"
	TypeConfirm      TicketType = "CONFIRM"
)

// AllTicketTypes is in display order.
var AllTicketTypes = []TicketType{TypeUnknown, TypeIntroduction, TypeRecruit, TypeConfirm}

func (t TicketType) String() string {
	return string(t)
}

func (t TicketType) IsValid() bool {
	for _, v := range AllTicketTypes {
		if v == t {
			return true
		}
	}
	return false
}

func NewTicketType(value string) (TicketType, error) {
	t := TicketType(value)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid ticket type: %s", value)
	}
	return t, nil
}

var ticketTypeLabels = map[TicketType]string{
	TypeUnknown:      "Unknown",
	TypeIntroduction: "Introduction",
	TypeRecruit:      "Recruit for event",
	TypeConfirm:      "Confirm event participation",
}

// Label is the human readable name shown next to the code.
func (t TicketType) Label() string {
	return ticketTypeLabels[t]
}
