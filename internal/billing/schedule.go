package billing

import (
	"time"

	"rentora-backend/internal/models"
)

// Schedule holds the tunable parameters of the billing cycle.
// WindowDays is how close (in days) a due date must be before an invoice
// is generated for it; LookbackDays is how far back issued invoices are
// fetched for duplicate detection.
type Schedule struct {
	WindowDays   int
	LookbackDays int
}

// LeaseToBill is the slice of a lease the planner needs
type LeaseToBill struct {
	LeaseID    int
	RentAmount int64
	StartDate  time.Time
}

// IssuedInvoice identifies an already-issued invoice for duplicate detection
type IssuedInvoice struct {
	LeaseID int
	DueDate time.Time
}

// PlannedInvoice is one invoice the planner decided to create
type PlannedInvoice struct {
	LeaseID int
	Amount  int64
	DueDate time.Time
	Status  models.InvoiceStatus
}

type periodKey struct {
	leaseID int
	year    int
	month   time.Month
}

// Plan decides which leases need a new invoice as of today.
//
// For each lease the due date is the lease's anchor day (day-of-month of
// its start date) applied to the current month, clamped to the last day of
// the month when the anchor day does not exist. A missed cycle (due date
// already past, nothing issued for that month) is back-filled immediately
// with status OVERDUE. Otherwise the next unbilled due date is emitted as
// a DRAFT only when it falls within WindowDays of today. A lease whose
// start date is still in the future bills from its start month onward,
// so nothing is ever planned for a month before the lease begins.
//
// Duplicate detection is month-level: at most one invoice per lease per
// calendar month. Running Plan twice over the same snapshot plus its own
// output yields nothing, which is what makes the cron trigger idempotent.
func (s Schedule) Plan(today time.Time, leases []LeaseToBill, issued []IssuedInvoice) []PlannedInvoice {
	today = dateOnly(today)

	billed := make(map[periodKey]struct{}, len(issued))
	for _, inv := range issued {
		billed[keyFor(inv.LeaseID, inv.DueDate)] = struct{}{}
	}

	var planned []PlannedInvoice
	for _, lease := range leases {
		// Data integrity guard: a lease without a start date has no anchor day
		if lease.StartDate.IsZero() {
			continue
		}

		anchorDay := lease.StartDate.Day()
		start := time.Date(lease.StartDate.Year(), lease.StartDate.Month(), lease.StartDate.Day(), 0, 0, 0, 0, today.Location())
		due := dueDateIn(today.Year(), today.Month(), anchorDay, today.Location())
		if due.Before(start) {
			// Lease has not reached its first cycle: the earliest possible
			// due date is the start date itself, never a month before it
			due = dueDateIn(start.Year(), start.Month(), anchorDay, today.Location())
		}

		if due.Before(today) {
			if _, ok := billed[keyFor(lease.LeaseID, due)]; !ok {
				// Missed cycle: back-fill right away instead of skipping it
				planned = append(planned, PlannedInvoice{
					LeaseID: lease.LeaseID,
					Amount:  lease.RentAmount,
					DueDate: due,
					Status:  models.InvoiceStatusOverdue,
				})
				continue
			}
			due = dueDateIn(today.Year(), today.Month()+1, anchorDay, today.Location())
		} else if _, ok := billed[keyFor(lease.LeaseID, due)]; ok {
			// Current cycle already billed, look at the next one
			due = dueDateIn(today.Year(), today.Month()+1, anchorDay, today.Location())
		}
		if due.Before(start) {
			due = dueDateIn(start.Year(), start.Month(), anchorDay, today.Location())
		}

		if _, ok := billed[keyFor(lease.LeaseID, due)]; ok {
			continue
		}
		if days := daysUntil(today, due); days >= 0 && days <= s.WindowDays {
			planned = append(planned, PlannedInvoice{
				LeaseID: lease.LeaseID,
				Amount:  lease.RentAmount,
				DueDate: due,
				Status:  models.InvoiceStatusDraft,
			})
		}
	}
	return planned
}

// LookbackStart returns the earliest created_at the duplicate checker
// needs issued invoices from.
func (s Schedule) LookbackStart(today time.Time) time.Time {
	return dateOnly(today).AddDate(0, 0, -s.LookbackDays)
}

func keyFor(leaseID int, due time.Time) periodKey {
	return periodKey{leaseID: leaseID, year: due.Year(), month: due.Month()}
}

// dueDateIn applies the anchor day to a year/month, clamping to the last
// day of the month (a lease anchored on the 31st bills on Feb 28/29).
// month may be out of range; time.Date normalizes it.
func dueDateIn(year int, month time.Month, anchorDay int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if anchorDay > lastDay {
		anchorDay = lastDay
	}
	return time.Date(year, month, anchorDay, 0, 0, 0, 0, loc)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysUntil(today, due time.Time) int {
	return int(due.Sub(today).Hours() / 24)
}
