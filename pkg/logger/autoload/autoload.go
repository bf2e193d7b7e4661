// Package autoload initializes the global logger from LOG_* environment
// variables on import.
package autoload

import (
	configx "github.com/advait08/sales-agent-llm/pkg/config"
	logx "github.com/advait08/sales-agent-llm/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
