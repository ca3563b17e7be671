package config

import "go.uber.org/fx"

// Module loads configuration from .env, the environment and command-line flags.
var Module = fx.Provide(Load)
