// Package autoload initializes the global logger from LOG_* environment
// variables as a side effect of being imported.
package autoload

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	logx "github.com/goodfoods/concierge/pkg/logger"
)

func init() {
	logx.Init(loadConfig())
}

// loadConfig falls back to defaults when LOG_* variables are malformed, but
// says so rather than degrading silently.
func loadConfig() logx.Config {
	var conf logx.Config
	if err := envconfig.Process("LOG", &conf); err != nil {
		log.Warn().Err(err).Msg("invalid LOG_* configuration, using defaults")
		return logx.Config{}
	}
	return conf
}
