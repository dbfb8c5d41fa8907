package contact

import (
	"fmt"
	"time"

	"github.com/dggcrm/dggcrm/internal/shared/biztime"
)

type ActivityType string

const (
	ActivityAccomplishment ActivityType = "accomplishment"
	ActivitySuspicion      ActivityType = "suspicion"
	ActivityMisc           ActivityType = "misc"
)

func (t ActivityType) String() string {
	return string(t)
}

func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityAccomplishment, ActivitySuspicion, ActivityMisc:
		return true
	}
	return false
}

func NewActivityType(value string) (ActivityType, error) {
	t := ActivityType(value)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid activity type: %s", value)
	}
	return t, nil
}

// Activity is an append-only log entry about a contact.
type Activity struct {
	ID        uint
	ContactID uint
	Type      ActivityType
	Data      map[string]interface{}
	CreatedAt time.Time
}

func NewActivity(contactID uint, activityType ActivityType, data map[string]interface{}) (*Activity, error) {
	if contactID == 0 {
		return nil, fmt.Errorf("contact ID is required")
	}
	if !activityType.IsValid() {
		return nil, fmt.Errorf("invalid activity type: %s", activityType)
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	return &Activity{
		ContactID: contactID,
		Type:      activityType,
		Data:      data,
		CreatedAt: biztime.NowUTC(),
	}, nil
}
