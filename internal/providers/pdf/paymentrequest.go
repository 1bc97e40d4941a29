// Package pdf renders payment requests with maroto.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/smallbiznis/payrequest/internal/paymentrequest/domain"
)

const dateLayout = "Jan 02, 2006"

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

// GeneratePaymentRequest lays out the document in the contract order:
// header, bill-to, project, notes, items table, totals, payment info,
// footer. Maroto paginates the item rows when vertical space runs out.
func (p *PDFProvider) GeneratePaymentRequest(ctx context.Context, record domain.PaymentRequest) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, record)
	addParties(m, record)
	addNotes(m, record)
	addItemsTable(m, record)
	addTotals(m, record)
	addPaymentInfo(m, record)
	addFooter(m, record)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render payment request %s: %w", record.RequestNumber, err)
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

func addHeader(m core.Maroto, record domain.PaymentRequest) {
	m.AddRow(12,
		text.NewCol(7, "PAYMENT REQUEST", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		col.New(5).Add(
			text.New("Request #: "+record.RequestNumber, props.Text{Size: 10}),
			text.New("Date: "+record.IssueDate.Format(dateLayout), props.Text{Size: 10, Top: 4}),
			text.New("Due Date: "+record.DueDate.Format(dateLayout), props.Text{Size: 10, Top: 8}),
		),
	)

	if record.Urgency != domain.UrgencyNormal {
		m.AddRow(8,
			text.NewCol(12, strings.ToUpper(string(record.Urgency)), props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Color: urgencyColor(record.Urgency),
			}),
		)
	}
}

func urgencyColor(u domain.Urgency) *props.Color {
	switch u {
	case domain.UrgencyLow:
		return &props.Color{Red: 40, Green: 167, Blue: 69}
	case domain.UrgencyHigh:
		return &props.Color{Red: 255, Green: 193, Blue: 7}
	case domain.UrgencyUrgent:
		return &props.Color{Red: 220, Green: 53, Blue: 69}
	default:
		return nil
	}
}

func addParties(m core.Maroto, record domain.PaymentRequest) {
	client := col.New(6).Add(
		text.New("Bill To:", props.Text{Size: 12, Style: fontstyle.Bold}),
		text.New(record.Client.Name, props.Text{Size: 10, Top: 6}),
	)
	offset := 10.0
	if addr := record.Client.FullAddress(); addr != "" {
		client.Add(text.New(addr, props.Text{Size: 10, Top: offset}))
		offset += 4
	}
	if record.Client.Email != "" {
		client.Add(text.New(record.Client.Email, props.Text{Size: 10, Top: offset}))
		offset += 4
	}
	if record.Client.Phone != "" {
		client.Add(text.New(record.Client.Phone, props.Text{Size: 10, Top: offset}))
	}

	project := col.New(6).Add(
		text.New("Project:", props.Text{Size: 12, Style: fontstyle.Bold}),
		text.New(record.Project.Name, props.Text{Size: 10, Top: 6}),
	)
	offset = 10.0
	if record.Project.Description != "" {
		project.Add(text.New(record.Project.Description, props.Text{Size: 10, Top: offset}))
		offset += 4
	}
	if record.Project.StartDate != nil {
		project.Add(text.New("Start: "+record.Project.StartDate.Format(dateLayout), props.Text{Size: 10, Top: offset}))
		offset += 4
	}
	if record.Project.EndDate != nil {
		project.Add(text.New("End: "+record.Project.EndDate.Format(dateLayout), props.Text{Size: 10, Top: offset}))
	}

	m.AddRow(32, client, project)
}

func addNotes(m core.Maroto, record domain.PaymentRequest) {
	if record.Notes == "" {
		return
	}
	m.AddRow(8,
		text.NewCol(12, "Payment Request Details:", props.Text{Size: 12, Style: fontstyle.Bold}),
	)
	m.AddRow(12,
		text.NewCol(12, record.Notes, props.Text{Size: 10}),
	)
}

func addItemsTable(m core.Maroto, record domain.PaymentRequest) {
	m.AddRow(8,
		text.NewCol(3, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit Price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	rows := make([]core.Row, 0, len(record.Items))
	for i, item := range record.Items {
		name := item.Name
		if name == "" {
			name = fmt.Sprintf("Item %d", i+1)
		}
		rows = append(rows, row.New(8).Add(
			text.NewCol(3, name, props.Text{Size: 9}),
			text.NewCol(4, item.Description, props.Text{Size: 9}),
			text.NewCol(1, fmt.Sprintf("%g", item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(record.Currency, item.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(record.Currency, item.Quantity*item.UnitPrice), props.Text{Size: 9, Align: align.Right}),
		))
	}
	m.AddRows(rows...)
}

func addTotals(m core.Maroto, record domain.PaymentRequest) {
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal:", props.Text{Size: 9}),
		text.NewCol(2, money(record.Currency, record.Subtotal), props.Text{Size: 9, Align: align.Right}),
	)
	if record.Discount > 0 {
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, fmt.Sprintf("Discount (%g%%):", record.DiscountRate), props.Text{Size: 9}),
			text.NewCol(2, money(record.Currency, record.Discount), props.Text{Size: 9, Align: align.Right}),
		)
	}
	if record.Tax > 0 {
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, fmt.Sprintf("Tax (%g%%):", record.TaxRate), props.Text{Size: 9}),
			text.NewCol(2, money(record.Currency, record.Tax), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total:", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, money(record.Currency, record.Total), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
}

func addPaymentInfo(m core.Maroto, record domain.PaymentRequest) {
	if len(record.PaymentMethods) > 0 {
		m.AddRow(8,
			text.NewCol(12, "Payment Methods:", props.Text{Size: 10, Style: fontstyle.Bold}),
		)
		for _, method := range record.PaymentMethods {
			m.AddRow(5,
				text.NewCol(12, "- "+method, props.Text{Size: 9}),
			)
		}
	}

	m.AddRow(8,
		text.NewCol(12, "Terms:", props.Text{Size: 10, Style: fontstyle.Bold}),
	)
	m.AddRow(6,
		text.NewCol(12, record.Terms, props.Text{Size: 9}),
	)
}

func addFooter(m core.Maroto, record domain.PaymentRequest) {
	m.AddRow(10,
		text.NewCol(6, "Generated on "+time.Now().UTC().Format("Jan 02, 2006 at 15:04"), props.Text{
			Size:  8,
			Style: fontstyle.Italic,
		}),
		text.NewCol(6, "Payment Request ID: "+record.ID, props.Text{
			Size:  8,
			Style: fontstyle.Italic,
			Align: align.Right,
		}),
	)
}

func money(currency string, amount float64) string {
	return fmt.Sprintf("%s %.2f", currency, amount)
}
