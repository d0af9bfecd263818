package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentora-backend/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPlanGeneratesInsideWindow(t *testing.T) {
	s := Schedule{WindowDays: 7, LookbackDays: 45}
	today := date(2026, time.March, 13)

	leases := []LeaseToBill{
		{LeaseID: 1, RentAmount: 100_000, StartDate: date(2025, time.June, 20)},
	}

	planned := s.Plan(today, leases, nil)
	require.Len(t, planned, 1)
	assert.Equal(t, 1, planned[0].LeaseID)
	assert.Equal(t, int64(100_000), planned[0].Amount)
	assert.Equal(t, date(2026, time.March, 20), planned[0].DueDate)
	assert.Equal(t, models.InvoiceStatusDraft, planned[0].Status)
}

func TestPlanWindowBoundary(t *testing.T) {
	s := Schedule{WindowDays: 7}
	lease := []LeaseToBill{{LeaseID: 1, RentAmount: 50_000, StartDate: date(2025, time.January, 20)}}

	// Due date exactly 7 days away: generated
	planned := s.Plan(date(2026, time.March, 13), lease, nil)
	assert.Len(t, planned, 1)

	// Due date 8 days away: not yet
	planned = s.Plan(date(2026, time.March, 12), lease, nil)
	assert.Empty(t, planned)

	// Due today: generated
	planned = s.Plan(date(2026, time.March, 20), lease, nil)
	require.Len(t, planned, 1)
	assert.Equal(t, models.InvoiceStatusDraft, planned[0].Status)
}

func TestPlanEndOfMonthClamp(t *testing.T) {
	s := Schedule{WindowDays: 7}
	lease := []LeaseToBill{{LeaseID: 1, RentAmount: 80_000, StartDate: date(2025, time.October, 31)}}

	tests := []struct {
		name  string
		today time.Time
		due   time.Time
	}{
		{"february non-leap", date(2026, time.February, 25), date(2026, time.February, 28)},
		{"february leap", date(2028, time.February, 25), date(2028, time.February, 29)},
		{"thirty-day month", date(2026, time.April, 28), date(2026, time.April, 30)},
		{"thirty-one-day month", date(2026, time.May, 30), date(2026, time.May, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			planned := s.Plan(tt.today, lease, nil)
			require.Len(t, planned, 1)
			assert.Equal(t, tt.due, planned[0].DueDate)
		})
	}
}

func TestPlanBackfillsMissedCycleAsOverdue(t *testing.T) {
	s := Schedule{WindowDays: 7}
	lease := []LeaseToBill{{LeaseID: 1, RentAmount: 60_000, StartDate: date(2025, time.July, 5)}}

	// The 5th has passed and nothing was issued for March: back-fill now,
	// already overdue, even though the date is outside the forward window.
	planned := s.Plan(date(2026, time.March, 18), lease, nil)
	require.Len(t, planned, 1)
	assert.Equal(t, date(2026, time.March, 5), planned[0].DueDate)
	assert.Equal(t, models.InvoiceStatusOverdue, planned[0].Status)
}

func TestPlanAdvancesToNextMonthWhenCurrentBilled(t *testing.T) {
	s := Schedule{WindowDays: 7}
	lease := []LeaseToBill{{LeaseID: 1, RentAmount: 60_000, StartDate: date(2025, time.July, 5)}}
	issued := []IssuedInvoice{{LeaseID: 1, DueDate: date(2026, time.March, 5)}}

	// March billed, April 5th is 7 days out on March 29th
	planned := s.Plan(date(2026, time.March, 29), lease, issued)
	require.Len(t, planned, 1)
	assert.Equal(t, date(2026, time.April, 5), planned[0].DueDate)
	assert.Equal(t, models.InvoiceStatusDraft, planned[0].Status)

	// March billed, April 5th still 10 days out: nothing
	planned = s.Plan(date(2026, time.March, 26), lease, issued)
	assert.Empty(t, planned)
}

func TestPlanMonthLevelDuplicateKey(t *testing.T) {
	s := Schedule{WindowDays: 7}
	lease := []LeaseToBill{{LeaseID: 1, RentAmount: 60_000, StartDate: date(2025, time.July, 20)}}

	// An invoice issued earlier in the month, on a different day, still
	// counts as this month's bill: one invoice per lease per month.
	issued := []IssuedInvoice{{LeaseID: 1, DueDate: date(2026, time.March, 2)}}
	planned := s.Plan(date(2026, time.March, 15), lease, issued)
	assert.Empty(t, planned)
}

func TestPlanIdempotence(t *testing.T) {
	s := Schedule{WindowDays: 7}
	today := date(2026, time.March, 15)
	leases := []LeaseToBill{
		{LeaseID: 1, RentAmount: 100_000, StartDate: date(2025, time.June, 20)},
		{LeaseID: 2, RentAmount: 75_000, StartDate: date(2025, time.January, 31)},
		{LeaseID: 3, RentAmount: 50_000, StartDate: date(2025, time.November, 1)},
	}

	first := s.Plan(today, leases, nil)
	require.NotEmpty(t, first)

	// Feed the first run's output back in as issued invoices: the second
	// run over the same snapshot must plan nothing.
	issued := make([]IssuedInvoice, 0, len(first))
	for _, p := range first {
		issued = append(issued, IssuedInvoice{LeaseID: p.LeaseID, DueDate: p.DueDate})
	}
	second := s.Plan(today, leases, issued)
	assert.Empty(t, second)
}

func TestPlanSkipsLeaseNotYetStarted(t *testing.T) {
	s := Schedule{WindowDays: 7, LookbackDays: 45}
	lease := []LeaseToBill{{LeaseID: 1, RentAmount: 100_000, StartDate: date(2026, time.April, 10)}}

	// This month's anchor date (March 10) is behind today, but the lease
	// only begins in April: nothing is due yet and nothing is overdue.
	planned := s.Plan(date(2026, time.March, 15), lease, nil)
	assert.Empty(t, planned)

	// Months ahead of the start: still nothing
	planned = s.Plan(date(2026, time.January, 20), lease, nil)
	assert.Empty(t, planned)
}

func TestPlanFirstInvoiceDueOnStartDate(t *testing.T) {
	s := Schedule{WindowDays: 7}
	lease := []LeaseToBill{{LeaseID: 1, RentAmount: 100_000, StartDate: date(2026, time.April, 10)}}

	// Start date within the window: the first invoice lands on it as a DRAFT
	planned := s.Plan(date(2026, time.April, 5), lease, nil)
	require.Len(t, planned, 1)
	assert.Equal(t, date(2026, time.April, 10), planned[0].DueDate)
	assert.Equal(t, models.InvoiceStatusDraft, planned[0].Status)
}

func TestPlanSkipsLeaseWithoutStartDate(t *testing.T) {
	s := Schedule{WindowDays: 7}
	planned := s.Plan(date(2026, time.March, 15), []LeaseToBill{
		{LeaseID: 1, RentAmount: 100_000},
	}, nil)
	assert.Empty(t, planned)
}

func TestPlanIgnoresOtherLeasesInvoices(t *testing.T) {
	s := Schedule{WindowDays: 7}
	lease := []LeaseToBill{{LeaseID: 1, RentAmount: 60_000, StartDate: date(2025, time.July, 20)}}

	// Lease 2 being billed this month says nothing about lease 1
	issued := []IssuedInvoice{{LeaseID: 2, DueDate: date(2026, time.March, 20)}}
	planned := s.Plan(date(2026, time.March, 15), lease, issued)
	assert.Len(t, planned, 1)
}

func TestLookbackStart(t *testing.T) {
	s := Schedule{WindowDays: 7, LookbackDays: 45}
	start := s.LookbackStart(time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC))
	assert.Equal(t, date(2026, time.January, 29), start)
}
