package main

import (
	"github.com/smallbiznis/payrequest/internal/clock"
	"github.com/smallbiznis/payrequest/internal/config"
	"github.com/smallbiznis/payrequest/internal/observability"
	"github.com/smallbiznis/payrequest/internal/paymentrequest"
	"github.com/smallbiznis/payrequest/internal/providers/pdf"
	"github.com/smallbiznis/payrequest/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		clock.Module,
		pdf.Module,
		paymentrequest.Module,
		server.Module,
	)
	app.Run()
}
