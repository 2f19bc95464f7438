package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level log
// lines. The CLI installs it when running verbosely.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to l, or to log.Default() when nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l}
}

// Install registers h for every hook category.
func (h *LogHooks) Install() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetServerHooks(h)
}

func (h *LogHooks) OnGenerateStart(_ context.Context, kind string, formats []string) {
	h.logger.Debug("generate start", "kind", kind, "formats", formats)
}

func (h *LogHooks) OnGenerateComplete(_ context.Context, kind string, formats []string, d time.Duration, err error) {
	h.logger.Debug("generate done", "kind", kind, "formats", formats, "elapsed", d, "err", err)
}

func (h *LogHooks) OnExportStart(_ context.Context, kind, format string) {
	h.logger.Debug("export start", "kind", kind, "format", format)
}

func (h *LogHooks) OnExportComplete(_ context.Context, kind, format string, size int, d time.Duration, err error) {
	h.logger.Debug("export done", "kind", kind, "format", format, "bytes", size, "elapsed", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("request", "method", method, "route", route, "status", status, "elapsed", d)
}

func (h *LogHooks) OnStreamStart(_ context.Context, kind string) {
	h.logger.Debug("stream start", "kind", kind)
}

func (h *LogHooks) OnStreamEnd(_ context.Context, kind string, frames int, err error) {
	h.logger.Debug("stream end", "kind", kind, "frames", frames, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
