package cashfree

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/tiffinbox/tiffinbox/internal/config"
)

// Module exposes the gateway client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(
		p.Config.CashfreeBaseURL,
		p.Config.CashfreeClientID,
		p.Config.CashfreeClientSecret,
		p.Config.CashfreeAPIVersion,
		p.Config.GatewayTimeout,
		p.Logger,
	)
}
