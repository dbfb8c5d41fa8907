package ticket

import (
	"math"

	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
)

// OverallRateKey labels the row that sums every ticket type.
const OverallRateKey = "overall"

// AskOutcomeCount is the number of asks to one contact with a given status on
// tickets of a given type.
type AskOutcomeCount struct {
	Type   vo.TicketType
	Status vo.AskStatus
	Count  int64
}

// AcceptanceRate summarizes how often a contact agreed when asked.
// Percentage is constants.AcceptanceRateNeverOffered when Total is zero.
type AcceptanceRate struct {
	Type       string
	Accepted   int64
	Rejected   int64
	Total      int64
	Percentage float64
}

// ComputeAcceptanceRates folds outcome counts into one row per ticket type,
// in declaration order, followed by the overall row. Pending asks are not
// offers yet and are ignored.
func ComputeAcceptanceRates(counts []AskOutcomeCount) []AcceptanceRate {
	byType := make(map[vo.TicketType]*AcceptanceRate, len(vo.AllTicketTypes))
	rows := make([]AcceptanceRate, 0, len(vo.AllTicketTypes)+1)
	for _, t := range vo.AllTicketTypes {
		rows = append(rows, AcceptanceRate{Type: t.String()})
	}
	for i, t := range vo.AllTicketTypes {
		byType[t] = &rows[i]
	}

	overall := AcceptanceRate{Type: OverallRateKey}
	for _, c := range counts {
		row, ok := byType[c.Type]
		if !ok {
			continue
		}
		switch {
		case c.Status.IsAccepted():
			row.Accepted += c.Count
			overall.Accepted += c.Count
		case c.Status.IsRejected():
			row.Rejected += c.Count
			overall.Rejected += c.Count
		}
	}

	rows = append(rows, overall)
	for i := range rows {
		rows[i].Total = rows[i].Accepted + rows[i].Rejected
		rows[i].Percentage = acceptancePercentage(rows[i].Accepted, rows[i].Total)
	}
	return rows
}

func acceptancePercentage(accepted, total int64) float64 {
	if total == 0 {
		return constants.AcceptanceRateNeverOffered
	}
	return math.Round(float64(accepted)/float64(total)*100*100) / 100
}
