package test

import "github.com/tiffinbox/tiffinbox/internal/domain/model"

// VerifierStub implements token verification with a fixed outcome.
type VerifierStub struct {
	Actor    model.Actor
	Err      error
	VerifyFn func(string) (model.Actor, error)
}

// Verify returns the configured actor or error.
func (s *VerifierStub) Verify(token string) (model.Actor, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(token)
	}
	if s.Err != nil {
		return model.Actor{}, s.Err
	}
	return s.Actor, nil
}
