// Package domain contains the billable entities: clients, projects and
// line items. All monetary math is plain float64, double precision.
package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item is a billable line item. TaxRate and DiscountRate apply only to the
// item's own derived amounts; the payment-request aggregate uses its own
// request-level rates over the raw quantity*unitPrice sum.
type Item struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Quantity     float64   `json:"quantity"`
	UnitPrice    float64   `json:"unitPrice"`
	Unit         string    `json:"unit"`
	Category     string    `json:"category"`
	SKU          string    `json:"sku"`
	TaxRate      float64   `json:"taxRate"`
	DiscountRate float64   `json:"discountRate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ItemParams carries the caller-supplied fields for a new item.
type ItemParams struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	Unit         string  `json:"unit"`
	Category     string  `json:"category"`
	SKU          string  `json:"sku"`
	TaxRate      float64 `json:"taxRate"`
	DiscountRate float64 `json:"discountRate"`
}

// NewItem builds an item, applying the historical defaults: quantity 1,
// unit "piece".
func NewItem(p ItemParams) Item {
	if p.Quantity == 0 {
		p.Quantity = 1
	}
	if strings.TrimSpace(p.Unit) == "" {
		p.Unit = "piece"
	}
	now := time.Now().UTC()
	return Item{
		ID:           uuid.NewString(),
		Name:         p.Name,
		Description:  p.Description,
		Quantity:     p.Quantity,
		UnitPrice:    p.UnitPrice,
		Unit:         p.Unit,
		Category:     p.Category,
		SKU:          p.SKU,
		TaxRate:      p.TaxRate,
		DiscountRate: p.DiscountRate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewServiceItem builds a time-based item, defaulting unit/category.
func NewServiceItem(p ItemParams) Item {
	if strings.TrimSpace(p.Unit) == "" {
		p.Unit = "hour"
	}
	if strings.TrimSpace(p.Category) == "" {
		p.Category = "Services"
	}
	return NewItem(p)
}

// NewProductItem builds a goods item, defaulting unit/category.
func NewProductItem(p ItemParams) Item {
	if strings.TrimSpace(p.Unit) == "" {
		p.Unit = "piece"
	}
	if strings.TrimSpace(p.Category) == "" {
		p.Category = "Products"
	}
	return NewItem(p)
}

// Subtotal is quantity * unit price.
func (i Item) Subtotal() float64 {
	return i.Quantity * i.UnitPrice
}

// Discount is the item-level discount amount.
func (i Item) Discount() float64 {
	return i.Subtotal() * (i.DiscountRate / 100)
}

// TaxableAmount is subtotal minus discount.
func (i Item) TaxableAmount() float64 {
	return i.Subtotal() - i.Discount()
}

// Tax is the item-level tax amount.
func (i Item) Tax() float64 {
	return i.TaxableAmount() * (i.TaxRate / 100)
}

// Total is subtotal - discount + tax.
func (i Item) Total() float64 {
	return i.TaxableAmount() + i.Tax()
}

// CostPerUnit is the fully loaded per-unit cost.
func (i Item) CostPerUnit() float64 {
	if i.Quantity == 0 {
		return 0
	}
	return i.Total() / i.Quantity
}

func (i Item) HasDiscount() bool {
	return i.DiscountRate > 0
}

func (i Item) Taxable() bool {
	return i.TaxRate > 0
}

// QuantityWithUnit formats the quantity with its unit label.
func (i Item) QuantityWithUnit() string {
	if i.Quantity == 1 {
		return fmt.Sprintf("1 %s", i.Unit)
	}
	return fmt.Sprintf("%g %ss", i.Quantity, i.Unit)
}

// ItemSummary is the condensed view of an item with its derived amounts.
type ItemSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
	SKU         string  `json:"sku"`
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
	HasDiscount bool    `json:"hasDiscount"`
	Taxable     bool    `json:"isTaxable"`
}

// Summary condenses the item together with its derived amounts.
func (i Item) Summary() ItemSummary {
	return ItemSummary{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		Unit:        i.Unit,
		Category:    i.Category,
		SKU:         i.SKU,
		Subtotal:    i.Subtotal(),
		Discount:    i.Discount(),
		Tax:         i.Tax(),
		Total:       i.Total(),
		HasDiscount: i.HasDiscount(),
		Taxable:     i.Taxable(),
	}
}

// Clone returns a fresh item with the same billable fields and a new id.
func (i Item) Clone() Item {
	return NewItem(ItemParams{
		Name:         i.Name,
		Description:  i.Description,
		Quantity:     i.Quantity,
		UnitPrice:    i.UnitPrice,
		Unit:         i.Unit,
		Category:     i.Category,
		SKU:          i.SKU,
		TaxRate:      i.TaxRate,
		DiscountRate: i.DiscountRate,
	})
}

// ItemPatch whitelists the mutable fields of an item.
type ItemPatch struct {
	Name         *string
	Description  *string
	Quantity     *float64
	UnitPrice    *float64
	Unit         *string
	Category     *string
	SKU          *string
	TaxRate      *float64
	DiscountRate *float64
}

// Apply sets the provided fields and refreshes UpdatedAt.
func (i *Item) Apply(p ItemPatch) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Quantity != nil {
		i.Quantity = *p.Quantity
	}
	if p.UnitPrice != nil {
		i.UnitPrice = *p.UnitPrice
	}
	if p.Unit != nil {
		i.Unit = *p.Unit
	}
	if p.Category != nil {
		i.Category = *p.Category
	}
	if p.SKU != nil {
		i.SKU = *p.SKU
	}
	if p.TaxRate != nil {
		i.TaxRate = *p.TaxRate
	}
	if p.DiscountRate != nil {
		i.DiscountRate = *p.DiscountRate
	}
	i.UpdatedAt = time.Now().UTC()
}

// Validate checks the item's billable fields.
func (i Item) Validate() ValidationResult {
	var errs []string

	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, "item name is required")
	}
	if !isFinite(i.Quantity) || !isFinite(i.UnitPrice) || !isFinite(i.TaxRate) || !isFinite(i.DiscountRate) {
		errs = append(errs, "item amounts must be finite numbers")
	}
	if i.Quantity <= 0 {
		errs = append(errs, "quantity must be greater than 0")
	}
	if i.UnitPrice < 0 {
		errs = append(errs, "unit price cannot be negative")
	}
	if i.TaxRate < 0 || i.TaxRate > 100 {
		errs = append(errs, "tax rate must be between 0 and 100")
	}
	if i.DiscountRate < 0 || i.DiscountRate > 100 {
		errs = append(errs, "discount rate must be between 0 and 100")
	}

	return newValidationResult(errs)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
