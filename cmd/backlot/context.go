package main

import (
	"strings"
	"sync"

	"backlot/internal/api"
	"backlot/internal/artifact"
	"backlot/internal/catalog"
	"backlot/internal/config"
	"backlot/internal/generation"
	"backlot/internal/logging"
	"backlot/internal/studio"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	// newService is swappable in tests.
	newService func(cfg *config.Config) (*api.VersionService, func() error, error)
}

func newCommandContext(configFlag *string) *commandContext {
	ctx := &commandContext{configFlag: configFlag}
	ctx.newService = ctx.defaultService
	return ctx
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) defaultService(cfg *config.Config) (*api.VersionService, func() error, error) {
	store, err := artifact.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	session := studio.NewSession(
		store,
		catalog.New(cfg.Catalog),
		generation.New(cfg.Generation),
		logging.NewNop(),
	)
	cleanup := func() error {
		closeErr := session.Close()
		if err := store.Close(); err != nil {
			return err
		}
		return closeErr
	}
	return api.NewVersionService(session), cleanup, nil
}

func (c *commandContext) withService(fn func(*api.VersionService) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	svc, cleanup, err := c.newService(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cleanup != nil {
			_ = cleanup()
		}
	}()
	return fn(svc)
}
