package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/tiffinbox/tiffinbox/internal/app"
	"github.com/tiffinbox/tiffinbox/internal/config"
	"github.com/tiffinbox/tiffinbox/internal/domain/repository"
	"github.com/tiffinbox/tiffinbox/internal/storage/postgres"
	testhelpers "github.com/tiffinbox/tiffinbox/internal/test"
	"github.com/tiffinbox/tiffinbox/internal/usecase"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:           ":0",
		DatabaseURI:          "postgres://stub",
		CashfreeBaseURL:      "https://sandbox.cashfree.com",
		CashfreeClientID:     "client-id",
		CashfreeClientSecret: "client-secret",
		IdentitySecret:       "secret",
		GatewayTimeout:       time.Second,
		ShutdownTimeout:      time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	orderRepo := testhelpers.NewOrderRepositoryStub()
	menuRepo := &testhelpers.MenuRepositoryStub{}
	addressRepo := &testhelpers.AddressRepositoryStub{}
	gateway := &testhelpers.GatewayStub{}

	var facade *app.OrderingFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(context.Background),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.MenuRepository(menuRepo)),
			fx.Replace(repository.AddressRepository(addressRepo)),
			fx.Replace(usecase.PaymentGateway(gateway)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected ordering facade instance")
	}
}
