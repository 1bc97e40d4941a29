// Package ledger holds the in-process, insertion-ordered collection of
// payment requests. Contents live for the process lifetime only; losing
// them on shutdown is accepted behavior.
package ledger

import (
	"sync"
	"time"

	"github.com/smallbiznis/payrequest/internal/paymentrequest/domain"
	"github.com/smallbiznis/payrequest/internal/paymentrequest/format"
)

// Ledger owns the record list. A single mutex guards the count-then-append
// sequence so same-day numbering cannot race across concurrent builders.
type Ledger struct {
	mu      sync.Mutex
	records []domain.PaymentRequest
}

func New() *Ledger {
	return &Ledger{}
}

// Append inserts the record at the end. When the record carries no request
// number, the next same-day sequence number is assigned under the same
// lock that performs the insert.
func (l *Ledger) Append(record domain.PaymentRequest) (domain.PaymentRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if record.RequestNumber == "" {
		seq := l.countIssuedOnLocked(record.IssueDate) + 1
		number, err := format.RequestNumber(record.IssueDate, seq)
		if err != nil {
			return domain.PaymentRequest{}, err
		}
		record.RequestNumber = number
	}

	l.records = append(l.records, record)
	return record, nil
}

func (l *Ledger) countIssuedOnLocked(day time.Time) int64 {
	var count int64
	for _, rec := range l.records {
		if format.SameDay(rec.IssueDate, day) {
			count++
		}
	}
	return count
}

// FindByID returns the first record with the given id.
func (l *Ledger) FindByID(id string) (domain.PaymentRequest, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, rec := range l.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return domain.PaymentRequest{}, false
}

// UpdateStatus sets the record's status and refreshes UpdatedAt. The
// second result is false when the id is unknown; nothing is mutated then.
func (l *Ledger) UpdateStatus(id string, status domain.Status, now time.Time) (domain.PaymentRequest, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		if l.records[i].ID == id {
			l.records[i].Status = status
			l.records[i].UpdatedAt = now
			return l.records[i], true
		}
	}
	return domain.PaymentRequest{}, false
}

// Delete removes the first record with the given id and reports whether a
// removal occurred.
func (l *Ledger) Delete(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		if l.records[i].ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a snapshot copy of the ledger in insertion order.
func (l *Ledger) All() []domain.PaymentRequest {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.PaymentRequest, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
