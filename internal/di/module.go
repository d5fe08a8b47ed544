package di

import (
	"go.uber.org/fx"

	"github.com/tiffinbox/tiffinbox/internal/adapter/cashfree"
	"github.com/tiffinbox/tiffinbox/internal/adapter/events"
	"github.com/tiffinbox/tiffinbox/internal/app"
	"github.com/tiffinbox/tiffinbox/internal/config"
	"github.com/tiffinbox/tiffinbox/internal/logger"
	"github.com/tiffinbox/tiffinbox/internal/pkg/identity"
	"github.com/tiffinbox/tiffinbox/internal/server/http/router"
	"github.com/tiffinbox/tiffinbox/internal/storage/postgres"
	"github.com/tiffinbox/tiffinbox/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		identity.Module,
		postgres.Module,
		cashfree.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(client cashfree.Client) usecase.PaymentGateway { return client }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
