package identity

import (
	"go.uber.org/fx"

	"github.com/tiffinbox/tiffinbox/internal/config"
)

// Module wires the token verifier for dependency injection.
var Module = fx.Provide(func(cfg *config.Config) Verifier {
	return NewJWTVerifier(cfg.IdentitySecret)
})
