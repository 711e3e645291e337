package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-dev/nexus/internal/model"
)

func TestBranchTotals(t *testing.T) {
	idx := model.MonthlyVolumeIndex{
		"B1": {"2024-01": dec("500"), "2024-02": dec("200")},
		"B2": {"2024-01": dec("1000"), "2024-03": dec("200300")},
		"A0": {"2024-01": dec("700")},
	}
	got := BranchTotals(idx)
	require.Len(t, got, 3)
	assert.Equal(t, "B2", got[0].Branch)
	assert.True(t, dec("201300").Equal(got[0].Volume))
	// equal volumes fall back to branch code
	assert.Equal(t, "A0", got[1].Branch)
	assert.Equal(t, "B1", got[2].Branch)
}

func TestMonthlyTrend(t *testing.T) {
	got := MonthlyTrend(MonthlyVolumeByBranch(validTestdata(t)))
	require.Len(t, got, 3)
	assert.Equal(t, "2024-01", got[0].Month)
	assert.True(t, dec("1500").Equal(got[0].Volume))
	assert.Equal(t, "2024-02", got[1].Month)
	assert.Equal(t, "2024-03", got[2].Month)
	assert.True(t, dec("200300").Equal(got[2].Volume))
}

func TestNewCustomersByMonth(t *testing.T) {
	got := NewCustomersByMonth(CustomerLTV(validTestdata(t)))
	assert.Equal(t, []MonthCount{
		{Month: "2024-01", Count: 2},
		{Month: "2024-03", Count: 1},
	}, got)

	assert.Empty(t, NewCustomersByMonth([]model.CustomerLTV{{CustomerID: 1}}))
}

func TestKPIs(t *testing.T) {
	txns := validTestdata(t)
	idx := MonthlyVolumeByBranch(txns)
	ltvs := CustomerLTV(txns)
	k := KPIs(idx, DetectAnomalies(txns, DefaultAnomalyOptions()), ltvs)

	assert.True(t, dec("202000").Equal(k.TotalVolume))
	assert.Equal(t, 1, k.AnomalyCount)
	assert.Equal(t, 3, k.Customers)
}
