package logger

import (
	"log/slog"

	"github.com/tilsley/repoview/pkg/logging"
)

// AppName tags every gateway log record.
const AppName = "repoview-gateway"

// New returns the gateway logger configured from LOG_FORMAT and LOG_LEVEL.
// See pkg/logging for details.
func New() *slog.Logger {
	return logging.New(AppName)
}
