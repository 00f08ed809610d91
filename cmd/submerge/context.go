package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"submerge/internal/config"
	"submerge/internal/deps"
	"submerge/internal/logging"
	"submerge/internal/merge"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
	// configPath is the file the config came from; empty when defaults were used.
	configPath string

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	capsOnce sync.Once
	caps     *deps.CapabilityCache
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		if exists {
			c.configPath = resolved
		}
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		if c.verboseFlag != nil && *c.verboseFlag {
			copied := *cfg
			copied.Logging.Level = "debug"
			cfg = &copied
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// capabilities returns the process-wide filter cache. Every command in one
// invocation shares it, so a batch queries ffmpeg at most once per TTL.
func (c *commandContext) capabilities() *deps.CapabilityCache {
	c.capsOnce.Do(func() {
		ttl := deps.DefaultCapabilityTTL
		if cfg, err := c.ensureConfig(); err == nil {
			ttl = cfg.CapabilityTTL()
		}
		c.caps = deps.NewCapabilityCache(ttl, deps.QueryFilters)
	})
	return c.caps
}

func (c *commandContext) newMerger() (*merge.Merger, *config.Config, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, nil, err
	}
	return merge.New(cfg, logger), cfg, logger, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
