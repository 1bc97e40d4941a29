package domain

import (
	"context"
	"errors"
	"time"

	billingdomain "github.com/smallbiznis/payrequest/internal/billing/domain"
)

// BuildOptions are the optional pricing modifiers for a build. Zero values
// fall back to the configured request defaults.
type BuildOptions struct {
	RequestNumber  string     `json:"requestNumber"`
	IssueDate      *time.Time `json:"issueDate"`
	DueDate        *time.Time `json:"dueDate"`
	Notes          string     `json:"notes"`
	Terms          string     `json:"terms"`
	TaxRate        float64    `json:"taxRate"`
	DiscountRate   float64    `json:"discountRate"`
	Currency       string     `json:"currency"`
	PaymentMethods []string   `json:"paymentMethods"`
	Urgency        Urgency    `json:"urgency"`
}

// BuildRequest carries the inputs for a payment-request build.
type BuildRequest struct {
	Client  billingdomain.Client
	Project billingdomain.Project
	Items   []billingdomain.Item
	Options BuildOptions
}

// Service builds payment requests, renders them to PDF and serves the
// process-lifetime ledger.
type Service interface {
	Build(ctx context.Context, req BuildRequest) (PaymentRequest, error)
	GeneratePDF(ctx context.Context, record PaymentRequest) (string, error)
	GetByID(ctx context.Context, id string) (PaymentRequest, bool)
	List(ctx context.Context) []PaymentRequest
	UpdateStatus(ctx context.Context, id string, status Status) (PaymentRequest, bool)
	Delete(ctx context.Context, id string) bool
}

var (
	ErrNoItems         = errors.New("at_least_one_item_required")
	ErrNonFiniteAmount = errors.New("non_finite_amount")
	ErrInvalidRate     = errors.New("rate_out_of_range")
	ErrInvalidUrgency  = errors.New("invalid_urgency")
	ErrInvalidStatus   = errors.New("invalid_status")
)
