package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug and error lines
// to a logger. RegisterLogHooks installs it for all categories.
type LogHooks struct {
	Logger *log.Logger
}

// RegisterLogHooks installs log-backed hooks for every category.
func RegisterLogHooks(logger *log.Logger) {
	h := &LogHooks{Logger: logger}
	SetExportHooks(h)
	SetCacheHooks(h)
	SetExplainHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnExportStart(_ context.Context, format string) {
	h.Logger.Debug("export started", "format", format)
}

func (h *LogHooks) OnExportComplete(_ context.Context, format string, pages, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Error("export failed", "format", format, "duration", d, "error", err)
		return
	}
	h.Logger.Info("export complete", "format", format, "pages", pages, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnExplainRequest(_ context.Context, model string) {
	h.Logger.Debug("explanation requested", "model", model)
}

func (h *LogHooks) OnExplainComplete(_ context.Context, model string, chars int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("explanation failed", "model", model, "duration", d, "error", err)
		return
	}
	h.Logger.Info("explanation generated", "model", model, "chars", chars, "duration", d)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.Logger.Error("request failed", "method", method, "path", path, "error", err)
}
