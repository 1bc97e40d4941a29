package ledger

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/payrequest/internal/paymentrequest/domain"
)

func newRecord(id string, issued time.Time) domain.PaymentRequest {
	return domain.PaymentRequest{
		ID:        id,
		IssueDate: issued,
		Status:    domain.StatusPending,
		CreatedAt: issued,
		UpdatedAt: issued,
	}
}

func TestAppendAssignsSameDaySequence(t *testing.T) {
	l := New()
	day := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	first, err := l.Append(newRecord("a", day))
	require.NoError(t, err)
	assert.Equal(t, "PR-20240315-001", first.RequestNumber)

	second, err := l.Append(newRecord("b", day.Add(2*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "PR-20240315-002", second.RequestNumber)

	third, err := l.Append(newRecord("c", day.Add(5*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "PR-20240315-003", third.RequestNumber)

	nextDay, err := l.Append(newRecord("d", day.AddDate(0, 0, 1)))
	require.NoError(t, err)
	assert.Equal(t, "PR-20240316-001", nextDay.RequestNumber)
}

func TestAppendKeepsExplicitNumber(t *testing.T) {
	l := New()
	rec := newRecord("a", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	rec.RequestNumber = "PR-CUSTOM-001"

	stored, err := l.Append(rec)
	require.NoError(t, err)
	assert.Equal(t, "PR-CUSTOM-001", stored.RequestNumber)
}

func TestAppendConcurrentNumbersAreUnique(t *testing.T) {
	l := New()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	const n = 50
	var wg sync.WaitGroup
	results := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored, err := l.Append(newRecord("", day))
			assert.NoError(t, err)
			results <- stored.RequestNumber
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, n)
	for number := range results {
		assert.False(t, seen[number], "duplicate request number %s", number)
		seen[number] = true
	}
	assert.Len(t, seen, n)
}

func TestFindByID(t *testing.T) {
	l := New()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	_, err := l.Append(newRecord("a", day))
	require.NoError(t, err)

	found, ok := l.FindByID("a")
	assert.True(t, ok)
	assert.Equal(t, "a", found.ID)

	_, ok = l.FindByID("missing")
	assert.False(t, ok)
}

func TestUpdateStatus(t *testing.T) {
	l := New()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	_, err := l.Append(newRecord("a", day))
	require.NoError(t, err)

	later := day.Add(48 * time.Hour)
	updated, ok := l.UpdateStatus("a", domain.StatusPaid, later)
	assert.True(t, ok)
	assert.Equal(t, domain.StatusPaid, updated.Status)
	assert.Equal(t, later, updated.UpdatedAt)

	_, ok = l.UpdateStatus("missing", domain.StatusPaid, later)
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	l := New()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	_, err := l.Append(newRecord("a", day))
	require.NoError(t, err)
	_, err = l.Append(newRecord("b", day))
	require.NoError(t, err)

	assert.True(t, l.Delete("a"))
	assert.False(t, l.Delete("a"))
	assert.Equal(t, 1, l.Len())

	_, ok := l.FindByID("b")
	assert.True(t, ok)
}

func TestAllReturnsSnapshot(t *testing.T) {
	l := New()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	_, err := l.Append(newRecord("a", day))
	require.NoError(t, err)

	snapshot := l.All()
	require.Len(t, snapshot, 1)
	snapshot[0].Status = domain.StatusCancelled

	stored, ok := l.FindByID("a")
	require.True(t, ok)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	l := New()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, id := range []string{"a", "b", "c"} {
		_, err := l.Append(newRecord(id, day))
		require.NoError(t, err)
	}

	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, "c", all[2].ID)
}
