package domain

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe      = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	phoneStripRe = regexp.MustCompile(`[\s\-()]`)
)

// Address accepts either a free-form string or a structured value on the
// wire. When Freeform is set it wins over the structured parts.
type Address struct {
	Freeform string `json:"-"`
	Street   string `json:"street,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
	Country  string `json:"country,omitempty"`
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Address{Freeform: s}
		return nil
	}

	type structured Address
	var parsed structured
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	*a = Address(parsed)
	return nil
}

func (a Address) MarshalJSON() ([]byte, error) {
	if a.Freeform != "" {
		return json.Marshal(a.Freeform)
	}
	type structured Address
	return json.Marshal(structured(a))
}

// String joins the populated address parts.
func (a Address) String() string {
	if a.Freeform != "" {
		return a.Freeform
	}
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.City, a.State, a.ZipCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// Client is a billable party.
type Client struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      Address   `json:"address"`
	Company      string    `json:"company"`
	TaxID        string    `json:"taxId"`
	PaymentTerms string    `json:"paymentTerms"`
	Currency     string    `json:"currency"`
	Notes        string    `json:"notes"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ClientParams carries the caller-supplied fields for a new client.
type ClientParams struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Address      Address `json:"address"`
	Company      string  `json:"company"`
	TaxID        string  `json:"taxId"`
	PaymentTerms string  `json:"paymentTerms"`
	Currency     string  `json:"currency"`
	Notes        string  `json:"notes"`
}

// NewClient builds a client with "Net 30" terms and USD by default.
func NewClient(p ClientParams) Client {
	if strings.TrimSpace(p.PaymentTerms) == "" {
		p.PaymentTerms = "Net 30"
	}
	if strings.TrimSpace(p.Currency) == "" {
		p.Currency = "USD"
	}
	now := time.Now().UTC()
	return Client{
		ID:           uuid.NewString(),
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		Address:      p.Address,
		Company:      p.Company,
		TaxID:        p.TaxID,
		PaymentTerms: p.PaymentTerms,
		Currency:     p.Currency,
		Notes:        p.Notes,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// FullAddress returns the formatted address, empty when none is set.
func (c Client) FullAddress() string {
	return c.Address.String()
}

// ContactInfo returns the formatted contact line.
func (c Client) ContactInfo() string {
	parts := make([]string, 0, 2)
	if c.Email != "" {
		parts = append(parts, "Email: "+c.Email)
	}
	if c.Phone != "" {
		parts = append(parts, "Phone: "+c.Phone)
	}
	return strings.Join(parts, " | ")
}

// ClientSummary is the condensed view of a client.
type ClientSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Company      string    `json:"company"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Currency     string    `json:"currency"`
	PaymentTerms string    `json:"paymentTerms"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Summary condenses the client to its identifying and billing fields.
func (c Client) Summary() ClientSummary {
	return ClientSummary{
		ID:           c.ID,
		Name:         c.Name,
		Company:      c.Company,
		Email:        c.Email,
		Phone:        c.Phone,
		Currency:     c.Currency,
		PaymentTerms: c.PaymentTerms,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
	}
}

// Deactivate marks the client inactive.
func (c *Client) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now().UTC()
}

// Activate marks the client active.
func (c *Client) Activate() {
	c.Active = true
	c.UpdatedAt = time.Now().UTC()
}

// ClientPatch whitelists the mutable fields of a client.
type ClientPatch struct {
	Name         *string
	Email        *string
	Phone        *string
	Address      *Address
	Company      *string
	TaxID        *string
	PaymentTerms *string
	Currency     *string
	Notes        *string
	Active       *bool
}

// Apply sets the provided fields and refreshes UpdatedAt.
func (c *Client) Apply(p ClientPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
	if p.TaxID != nil {
		c.TaxID = *p.TaxID
	}
	if p.PaymentTerms != nil {
		c.PaymentTerms = *p.PaymentTerms
	}
	if p.Currency != nil {
		c.Currency = *p.Currency
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.Active != nil {
		c.Active = *p.Active
	}
	c.UpdatedAt = time.Now().UTC()
}

// Validate checks required fields and contact formats.
func (c Client) Validate() ValidationResult {
	var errs []string

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "client name is required")
	}
	if c.Email != "" && !emailRe.MatchString(c.Email) {
		errs = append(errs, "invalid email format")
	}
	if c.Phone != "" && !validPhone(c.Phone) {
		errs = append(errs, "invalid phone number format")
	}

	return newValidationResult(errs)
}

func validPhone(phone string) bool {
	return phoneRe.MatchString(phoneStripRe.ReplaceAllString(phone, ""))
}
