// Package config provides configuration infrastructure and Fx modules.
package config

import (
	"go.uber.org/fx"
)

// DefaultPath is read when CHOIR_CONFIG is unset.
const DefaultPath = "config.yaml"

// Module provides configuration dependencies.
var Module = fx.Module("config",
	fx.Provide(LoadConfig),
)

// PathFromEnv returns the config file path to load.
func PathFromEnv() string {
	return envStr("CHOIR_CONFIG", DefaultPath)
}
