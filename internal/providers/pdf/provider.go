package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/smallbiznis/payrequest/internal/paymentrequest/domain"
	"go.uber.org/fx"
)

// Provider renders a payment request into a PDF document.
type Provider interface {
	GeneratePaymentRequest(ctx context.Context, record domain.PaymentRequest) (io.Reader, error)
}

// NoOpProvider returns an empty document; used in tests that do not care
// about rendering.
type NoOpProvider struct{}

func (NoOpProvider) GeneratePaymentRequest(ctx context.Context, record domain.PaymentRequest) (io.Reader, error) {
	return bytes.NewReader(nil), nil
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)
