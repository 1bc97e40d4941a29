// Package domain contains the payment-request record and service contract.
package domain

import (
	"time"

	billingdomain "github.com/smallbiznis/payrequest/internal/billing/domain"
)

// Status represents payment-request lifecycle states.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	default:
		return false
	}
}

// Urgency is an advisory priority label; it only affects document
// presentation.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyUrgent:
		return true
	default:
		return false
	}
}

// PaymentRequest is a priced, numbered record requesting payment for a
// project's delivered items. Client, Project and Items are snapshots taken
// at build time; mutating the sources afterwards does not affect the
// record. Only Status and UpdatedAt change after creation, and only through
// the ledger.
type PaymentRequest struct {
	ID             string                 `json:"id"`
	RequestNumber  string                 `json:"requestNumber"`
	IssueDate      time.Time              `json:"issueDate"`
	DueDate        time.Time              `json:"dueDate"`
	Client         billingdomain.Client   `json:"client"`
	Project        billingdomain.Project  `json:"project"`
	Items          []billingdomain.Item   `json:"items"`
	Subtotal       float64                `json:"subtotal"`
	Discount       float64                `json:"discount"`
	DiscountRate   float64                `json:"discountRate"`
	TaxableAmount  float64                `json:"taxableAmount"`
	Tax            float64                `json:"tax"`
	TaxRate        float64                `json:"taxRate"`
	Total          float64                `json:"total"`
	Notes          string                 `json:"notes"`
	Terms          string                 `json:"terms"`
	Currency       string                 `json:"currency"`
	PaymentMethods []string               `json:"paymentMethods"`
	Urgency        Urgency                `json:"urgency"`
	Status         Status                 `json:"status"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}
