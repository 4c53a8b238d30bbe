package cli

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fcss/pkg/observability"
)

// cacheLogHooks reports import cache traffic on the debug log.
type cacheLogHooks struct {
	logger *log.Logger
}

func (h cacheLogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h cacheLogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h cacheLogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// registerHooks installs the debug hooks when debug logging is on.
func (c *CLI) registerHooks() {
	if c.Logger.GetLevel() > log.DebugLevel {
		return
	}
	observability.SetCacheHooks(cacheLogHooks{logger: c.Logger})
}

var _ observability.CacheHooks = cacheLogHooks{}
