package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	billingdomain "github.com/smallbiznis/payrequest/internal/billing/domain"
	"github.com/smallbiznis/payrequest/internal/clock"
	"github.com/smallbiznis/payrequest/internal/config"
	"github.com/smallbiznis/payrequest/internal/observability/metrics"
	"github.com/smallbiznis/payrequest/internal/paymentrequest/domain"
	"github.com/smallbiznis/payrequest/internal/paymentrequest/ledger"
	"github.com/smallbiznis/payrequest/internal/providers/pdf"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Cfg      config.Config
	Defaults *config.DefaultsHolder
	Ledger   *ledger.Ledger
	PDF      pdf.Provider
	Metrics  *metrics.PipelineMetrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	clock    clock.Clock
	cfg      config.Config
	defaults *config.DefaultsHolder
	ledger   *ledger.Ledger
	pdf      pdf.Provider
	metrics  *metrics.PipelineMetrics
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("paymentrequest.service"),
		clock:    p.Clock,
		cfg:      p.Cfg,
		defaults: p.Defaults,
		ledger:   p.Ledger,
		pdf:      p.PDF,
		metrics:  p.Metrics,
	}
}

// Build prices the items, applies defaults, snapshots the inputs and
// appends the record to the ledger.
//
// The aggregate breakdown applies the request-level discount and tax rates
// to the raw sum of quantity*unitPrice. Item-level rates only feed each
// item's own derived amounts and are deliberately not folded in here.
func (s *Service) Build(ctx context.Context, req domain.BuildRequest) (domain.PaymentRequest, error) {
	if len(req.Items) == 0 {
		return domain.PaymentRequest{}, domain.ErrNoItems
	}
	for _, item := range req.Items {
		if !finite(item.Quantity) || !finite(item.UnitPrice) {
			return domain.PaymentRequest{}, domain.ErrNonFiniteAmount
		}
	}

	opts := req.Options
	if !finite(opts.TaxRate) || !finite(opts.DiscountRate) {
		return domain.PaymentRequest{}, domain.ErrNonFiniteAmount
	}
	if opts.TaxRate < 0 || opts.TaxRate > 100 || opts.DiscountRate < 0 || opts.DiscountRate > 100 {
		return domain.PaymentRequest{}, domain.ErrInvalidRate
	}

	defaults := s.defaults.Get()

	urgency := opts.Urgency
	if urgency == "" {
		urgency = domain.Urgency(defaults.Urgency)
	}
	if !urgency.Valid() {
		return domain.PaymentRequest{}, domain.ErrInvalidUrgency
	}

	now := s.clock.Now()

	issueDate := now
	if opts.IssueDate != nil {
		issueDate = opts.IssueDate.UTC()
	}
	dueDate := issueDate.AddDate(0, 0, defaults.NetDays)
	if opts.DueDate != nil {
		dueDate = opts.DueDate.UTC()
	}

	terms := strings.TrimSpace(opts.Terms)
	if terms == "" {
		terms = defaults.Terms
	}
	currency := strings.TrimSpace(opts.Currency)
	if currency == "" {
		currency = defaults.Currency
	}

	var subtotal float64
	for _, item := range req.Items {
		subtotal += item.Quantity * item.UnitPrice
	}
	discount := subtotal * (opts.DiscountRate / 100)
	taxableAmount := subtotal - discount
	tax := taxableAmount * (opts.TaxRate / 100)
	total := taxableAmount + tax

	record := domain.PaymentRequest{
		ID:             uuid.NewString(),
		RequestNumber:  opts.RequestNumber,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		Client:         snapshotClient(req.Client),
		Project:        snapshotProject(req.Project),
		Items:          snapshotItems(req.Items),
		Subtotal:       subtotal,
		Discount:       discount,
		DiscountRate:   opts.DiscountRate,
		TaxableAmount:  taxableAmount,
		Tax:            tax,
		TaxRate:        opts.TaxRate,
		Total:          total,
		Notes:          opts.Notes,
		Terms:          terms,
		Currency:       currency,
		PaymentMethods: append([]string(nil), opts.PaymentMethods...),
		Urgency:        urgency,
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	record, err := s.ledger.Append(record)
	if err != nil {
		return domain.PaymentRequest{}, err
	}

	s.metrics.RequestBuilt(string(record.Urgency))
	s.log.Info("payment request built",
		zap.String("id", record.ID),
		zap.String("request_number", record.RequestNumber),
		zap.Float64("total", record.Total),
	)

	return record, nil
}

// GeneratePDF renders the record and writes <requestNumber>.pdf into the
// output directory, returning the file path.
func (s *Service) GeneratePDF(ctx context.Context, record domain.PaymentRequest) (string, error) {
	reader, err := s.pdf.GeneratePaymentRequest(ctx, record)
	if err != nil {
		s.metrics.PDFFailed()
		return "", fmt.Errorf("failed to generate PDF: %w", err)
	}

	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		s.metrics.PDFFailed()
		return "", fmt.Errorf("failed to generate PDF: %w", err)
	}

	path := filepath.Join(s.cfg.OutputDir, record.RequestNumber+".pdf")
	file, err := os.Create(path)
	if err != nil {
		s.metrics.PDFFailed()
		return "", fmt.Errorf("failed to generate PDF: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		s.metrics.PDFFailed()
		return "", fmt.Errorf("failed to generate PDF: %w", err)
	}

	s.metrics.PDFGenerated()
	s.log.Info("pdf written",
		zap.String("request_number", record.RequestNumber),
		zap.String("path", path),
	)

	return path, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.PaymentRequest, bool) {
	return s.ledger.FindByID(id)
}

func (s *Service) List(ctx context.Context) []domain.PaymentRequest {
	return s.ledger.All()
}

// UpdateStatus transitions a record. Unknown ids and invalid statuses
// report false without mutating anything.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) (domain.PaymentRequest, bool) {
	if !status.Valid() {
		return domain.PaymentRequest{}, false
	}
	return s.ledger.UpdateStatus(id, status, s.clock.Now())
}

func (s *Service) Delete(ctx context.Context, id string) bool {
	return s.ledger.Delete(id)
}

func snapshotClient(c billingdomain.Client) billingdomain.Client {
	return c
}

func snapshotProject(p billingdomain.Project) billingdomain.Project {
	p.Tags = append([]string(nil), p.Tags...)
	return p
}

func snapshotItems(items []billingdomain.Item) []billingdomain.Item {
	return append([]billingdomain.Item(nil), items...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
