package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
)

func rateFor(rows []AcceptanceRate, key string) AcceptanceRate {
	for _, r := range rows {
		if r.Type == key {
			return r
		}
	}
	return AcceptanceRate{}
}

func TestComputeAcceptanceRates_NeverOfferedSentinel(t *testing.T) {
	rows := ComputeAcceptanceRates(nil)

	require.Len(t, rows, len(vo.AllTicketTypes)+1)
	for _, r := range rows {
		assert.Equal(t, int64(0), r.Total)
		assert.Equal(t, constants.AcceptanceRateNeverOffered, r.Percentage, r.Type)
	}
}

func TestComputeAcceptanceRates_PerTypeAndOverall(t *testing.T) {
	rows := ComputeAcceptanceRates([]AskOutcomeCount{
		{Type: vo.TypeRecruit, Status: vo.AskAgreed, Count: 1},
		{Type: vo.TypeRecruit, Status: vo.AskDelivered, Count: 1},
		{Type: vo.TypeRecruit, Status: vo.AskGhosted, Count: 1},
		{Type: vo.TypeRecruit, Status: vo.AskUnknown, Count: 4},
		{Type: vo.TypeConfirm, Status: vo.AskRejected, Count: 2},
	})

	recruit := rateFor(rows, "RECRUIT")
	assert.Equal(t, int64(2), recruit.Accepted)
	assert.Equal(t, int64(1), recruit.Rejected)
	assert.Equal(t, int64(3), recruit.Total)
	assert.Equal(t, 66.67, recruit.Percentage)

	confirm := rateFor(rows, "CONFIRM")
	assert.Equal(t, 0.0, confirm.Percentage, "a real zero rate must differ from the sentinel")

	intro := rateFor(rows, "INTRODUCTION")
	assert.Equal(t, constants.AcceptanceRateNeverOffered, intro.Percentage)

	overall := rateFor(rows, OverallRateKey)
	assert.Equal(t, int64(5), overall.Total)
	assert.Equal(t, 40.0, overall.Percentage)
	assert.Equal(t, OverallRateKey, rows[len(rows)-1].Type)
}
