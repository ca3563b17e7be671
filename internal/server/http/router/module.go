package router

import "go.uber.org/fx"

// Module provides the gin engine serving the auth API and metrics.
var Module = fx.Provide(Setup)
