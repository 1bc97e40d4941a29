package paymentrequest

import (
	"github.com/smallbiznis/payrequest/internal/paymentrequest/ledger"
	"github.com/smallbiznis/payrequest/internal/paymentrequest/service"
	"go.uber.org/fx"
)

var Module = fx.Module("paymentrequest.service",
	fx.Provide(ledger.New),
	fx.Provide(service.New),
)
