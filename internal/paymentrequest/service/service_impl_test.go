package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	billingdomain "github.com/smallbiznis/payrequest/internal/billing/domain"
	"github.com/smallbiznis/payrequest/internal/clock"
	"github.com/smallbiznis/payrequest/internal/config"
	"github.com/smallbiznis/payrequest/internal/paymentrequest/domain"
	"github.com/smallbiznis/payrequest/internal/paymentrequest/ledger"
	"github.com/smallbiznis/payrequest/internal/providers/pdf"
)

func newTestService(t *testing.T, fake *clock.FakeClock) domain.Service {
	t.Helper()
	return New(Params{
		Log:      zap.NewNop(),
		Clock:    fake,
		Cfg:      config.Config{OutputDir: t.TempDir()},
		Defaults: config.StaticDefaults(config.DefaultRequestDefaults()),
		Ledger:   ledger.New(),
		PDF:      pdf.NoOpProvider{},
	})
}

func buildRequest(items ...billingdomain.Item) domain.BuildRequest {
	return domain.BuildRequest{
		Client:  billingdomain.NewClient(billingdomain.ClientParams{Name: "Acme"}),
		Project: billingdomain.NewProject(billingdomain.ProjectParams{Name: "Website"}),
		Items:   items,
	}
}

func TestBuildSubtotalFromRawItemSum(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	svc := newTestService(t, fake)

	req := buildRequest(
		billingdomain.NewItem(billingdomain.ItemParams{Name: "Design", Quantity: 80, UnitPrice: 75}),
		billingdomain.NewItem(billingdomain.ItemParams{Name: "Development", Quantity: 120, UnitPrice: 85}),
	)

	record, err := svc.Build(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 16200.0, record.Subtotal)
	assert.Equal(t, 0.0, record.Discount)
	assert.Equal(t, 0.0, record.Tax)
	assert.Equal(t, 16200.0, record.Total)
}

func TestBuildAggregateBreakdown(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	svc := newTestService(t, fake)

	req := buildRequest(
		billingdomain.NewItem(billingdomain.ItemParams{Name: "Hosting", Quantity: 10, UnitPrice: 100}),
	)
	req.Options = domain.BuildOptions{DiscountRate: 10, TaxRate: 8}

	record, err := svc.Build(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, record.Subtotal)
	assert.Equal(t, 100.0, record.Discount)
	assert.Equal(t, 900.0, record.TaxableAmount)
	assert.Equal(t, 72.0, record.Tax)
	assert.Equal(t, 972.0, record.Total)
}

func TestBuildItemRatesDoNotAffectAggregate(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	svc := newTestService(t, fake)

	item := billingdomain.NewItem(billingdomain.ItemParams{
		Name:         "Consulting",
		Quantity:     10,
		UnitPrice:    100,
		TaxRate:      20,
		DiscountRate: 50,
	})

	record, err := svc.Build(context.Background(), buildRequest(item))
	require.NoError(t, err)

	assert.Equal(t, 1000.0, record.Subtotal)
	assert.Equal(t, 1000.0, record.Total)
	assert.Equal(t, 600.0, record.Items[0].Total())
}

func TestBuildDefaultsApplied(t *testing.T) {
	issue := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	fake := clock.NewFakeClock(issue)
	svc := newTestService(t, fake)

	record, err := svc.Build(context.Background(), buildRequest(
		billingdomain.NewItem(billingdomain.ItemParams{Name: "Work", Quantity: 1, UnitPrice: 100}),
	))
	require.NoError(t, err)

	assert.Equal(t, issue, record.IssueDate)
	assert.Equal(t, issue.AddDate(0, 0, 30), record.DueDate)
	assert.Equal(t, "Net 30", record.Terms)
	assert.Equal(t, "USD", record.Currency)
	assert.Equal(t, domain.UrgencyNormal, record.Urgency)
	assert.Equal(t, domain.StatusPending, record.Status)
	assert.NotEmpty(t, record.ID)
}

func TestBuildExplicitOptionsWin(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	svc := newTestService(t, fake)

	issue := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	req := buildRequest(
		billingdomain.NewItem(billingdomain.ItemParams{Name: "Work", Quantity: 1, UnitPrice: 100}),
	)
	req.Options = domain.BuildOptions{
		IssueDate: &issue,
		DueDate:   &due,
		Terms:     "Due on receipt",
		Currency:  "EUR",
		Urgency:   domain.UrgencyUrgent,
		Notes:     "rush job",
	}

	record, err := svc.Build(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, issue, record.IssueDate)
	assert.Equal(t, due, record.DueDate)
	assert.Equal(t, "Due on receipt", record.Terms)
	assert.Equal(t, "EUR", record.Currency)
	assert.Equal(t, domain.UrgencyUrgent, record.Urgency)
	assert.Equal(t, "rush job", record.Notes)
	assert.Equal(t, "PR-20240401-001", record.RequestNumber)
}

func TestBuildSameDaySequencing(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, fake)

	item := billingdomain.NewItem(billingdomain.ItemParams{Name: "Work", Quantity: 1, UnitPrice: 100})

	first, err := svc.Build(context.Background(), buildRequest(item))
	require.NoError(t, err)
	assert.Equal(t, "PR-20240315-001", first.RequestNumber)

	fake.Advance(3 * time.Hour)
	second, err := svc.Build(context.Background(), buildRequest(item))
	require.NoError(t, err)
	assert.Equal(t, "PR-20240315-002", second.RequestNumber)

	fake.Advance(5 * time.Hour)
	third, err := svc.Build(context.Background(), buildRequest(item))
	require.NoError(t, err)
	assert.Equal(t, "PR-20240315-003", third.RequestNumber)

	fake.Set(time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC))
	nextDay, err := svc.Build(context.Background(), buildRequest(item))
	require.NoError(t, err)
	assert.Equal(t, "PR-20240316-001", nextDay.RequestNumber)
}

func TestBuildValidation(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, fake)

	_, err := svc.Build(context.Background(), buildRequest())
	assert.ErrorIs(t, err, domain.ErrNoItems)

	item := billingdomain.NewItem(billingdomain.ItemParams{Name: "Work", Quantity: 1, UnitPrice: 100})

	req := buildRequest(item)
	req.Options = domain.BuildOptions{TaxRate: 120}
	_, err = svc.Build(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidRate)

	req = buildRequest(item)
	req.Options = domain.BuildOptions{DiscountRate: -1}
	_, err = svc.Build(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidRate)

	req = buildRequest(item)
	req.Options = domain.BuildOptions{Urgency: "yesterday"}
	_, err = svc.Build(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidUrgency)
}

func TestBuildSnapshotIsolation(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, fake)

	item := billingdomain.NewItem(billingdomain.ItemParams{Name: "Work", Quantity: 1, UnitPrice: 100})
	req := buildRequest(item)
	req.Project.AddTag("web")

	record, err := svc.Build(context.Background(), req)
	require.NoError(t, err)

	req.Items[0].UnitPrice = 999
	req.Project.AddTag("mutated")
	req.Client.Name = "Changed"

	stored, ok := svc.GetByID(context.Background(), record.ID)
	require.True(t, ok)
	assert.Equal(t, 100.0, stored.Items[0].UnitPrice)
	assert.Equal(t, []string{"web"}, stored.Project.Tags)
	assert.Equal(t, "Acme", stored.Client.Name)
}

func TestUpdateStatusRejectsInvalid(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, fake)

	record, err := svc.Build(context.Background(), buildRequest(
		billingdomain.NewItem(billingdomain.ItemParams{Name: "Work", Quantity: 1, UnitPrice: 100}),
	))
	require.NoError(t, err)

	_, ok := svc.UpdateStatus(context.Background(), record.ID, "refunded")
	assert.False(t, ok)

	stored, found := svc.GetByID(context.Background(), record.ID)
	require.True(t, found)
	assert.Equal(t, domain.StatusPending, stored.Status)

	updated, ok := svc.UpdateStatus(context.Background(), record.ID, domain.StatusApproved)
	assert.True(t, ok)
	assert.Equal(t, domain.StatusApproved, updated.Status)
}

func TestDeleteRemovesRecord(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, fake)

	record, err := svc.Build(context.Background(), buildRequest(
		billingdomain.NewItem(billingdomain.ItemParams{Name: "Work", Quantity: 1, UnitPrice: 100}),
	))
	require.NoError(t, err)

	assert.True(t, svc.Delete(context.Background(), record.ID))
	assert.False(t, svc.Delete(context.Background(), record.ID))
	assert.Empty(t, svc.List(context.Background()))
}

func TestGeneratePDFWritesFile(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))

	outputDir := t.TempDir()
	svc := New(Params{
		Log:      zap.NewNop(),
		Clock:    fake,
		Cfg:      config.Config{OutputDir: outputDir},
		Defaults: config.StaticDefaults(config.DefaultRequestDefaults()),
		Ledger:   ledger.New(),
		PDF:      pdf.NoOpProvider{},
	})

	record, err := svc.Build(context.Background(), buildRequest(
		billingdomain.NewItem(billingdomain.ItemParams{Name: "Work", Quantity: 1, UnitPrice: 100}),
	))
	require.NoError(t, err)

	path, err := svc.GeneratePDF(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, record.RequestNumber+".pdf"), path)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
