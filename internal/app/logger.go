package app

import (
	"io"
	"log/slog"
	"strings"

	"github.com/vadim/linkedin-mcp/internal/config"
)

// NewLogger builds the process logger. In stdio mode w must not be stdout,
// which carries the MCP protocol.
func NewLogger(cfg config.Log, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}
