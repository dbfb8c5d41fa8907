package ticket

import (
	"fmt"
	"sort"
	"time"

	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

// TimelineMode selects which sources a ticket timeline includes.
type TimelineMode string

const (
	TimelineAll      TimelineMode = "all"
	TimelineAudit    TimelineMode = "audit"
	TimelineComments TimelineMode = "comments"
)

func ParseTimelineMode(s string) (TimelineMode, error) {
	switch TimelineMode(s) {
	case "":
		return TimelineAll, nil
	case TimelineAll, TimelineAudit, TimelineComments:
		return TimelineMode(s), nil
	default:
		return "", fmt.Errorf("invalid timeline mode %q: expected all, audit or comments", s)
	}
}

func (m TimelineMode) IncludesAudit() bool {
	return m == TimelineAll || m == TimelineAudit
}

func (m TimelineMode) IncludesComments() bool {
	return m == TimelineAll || m == TimelineComments
}

const (
	TimelineKindAudit   = "audit"
	TimelineKindComment = "comment"
)

// TimelineItem is an audit entry or a comment normalized to one shape.
type TimelineItem struct {
	Kind         string
	ID           uint
	CreatedAt    time.Time
	ActorID      *uint
	ActorDisplay string
	Message      string
	LogType      string
	Changes      map[string]interface{}

	// Comment is set for comment items so callers can render the body.
	Comment *Comment
}

// MergeTimeline unions both sources, newest first. Ties on created_at put
// audit entries before comments, then higher IDs first.
func MergeTimeline(audits []*AuditEntry, comments []*Comment, mode TimelineMode) []TimelineItem {
	items := make([]TimelineItem, 0, len(audits)+len(comments))
	if mode.IncludesAudit() {
		for _, a := range audits {
			items = append(items, TimelineItem{
				Kind:         TimelineKindAudit,
				ID:           a.ID,
				CreatedAt:    a.CreatedAt,
				ActorID:      a.ActorID,
				ActorDisplay: actorDisplay(a.ActorID, a.ActorUsername),
				Message:      a.Message,
				LogType:      a.LogType.String(),
				Changes:      a.Data,
			})
		}
	}
	if mode.IncludesComments() {
		for _, c := range comments {
			items = append(items, TimelineItem{
				Kind:         TimelineKindComment,
				ID:           c.ID,
				CreatedAt:    c.CreatedAt,
				ActorID:      c.AuthorID,
				ActorDisplay: actorDisplay(c.AuthorID, c.AuthorUsername),
				Message:      c.Message,
				Comment:      c,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		if a.Kind != b.Kind {
			return a.Kind == TimelineKindAudit
		}
		return a.ID > b.ID
	})
	return items
}

// PageTimeline returns one page of an already merged timeline.
func PageTimeline(items []TimelineItem, page query.PageFilter) []TimelineItem {
	start := page.Offset()
	if start >= len(items) {
		return []TimelineItem{}
	}
	end := start + page.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func actorDisplay(actorID *uint, username string) string {
	if actorID == nil {
		return constants.SystemActorDisplay
	}
	if username == "" {
		return fmt.Sprintf("user #%d", *actorID)
	}
	return username
}
