package usecase

import "go.uber.org/fx"

// Module provides AuthUseCase built from the configured store, hasher, token strategy and denylist.
var Module = fx.Provide(NewAuthUseCase)
