package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/tiffinbox/tiffinbox/internal/config"
	"github.com/tiffinbox/tiffinbox/internal/usecase"
)

// Module wires the AMQP publisher when a broker URL is configured and a
// no-op publisher otherwise.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) (usecase.EventPublisher, error) {
	if p.Config.AMQPURL == "" {
		p.Logger.Info("event broker not configured, order events disabled")
		return NoopPublisher{}, nil
	}
	pub, err := NewPublisher(p.Config.AMQPURL, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}
