package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"twitch/internal/config"
	"twitch/internal/library"
	"twitch/internal/logging"
)

type commandContext struct {
	configFlag *string
	runID      string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	serviceOnce sync.Once
	service     *library.Service
	serviceErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		runID:      uuid.NewString(),
	}
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

// ensureService builds the logger and library service on first use so that
// config-only commands never open log files. Log records go to the command's
// stderr and the rotating log file.
func (c *commandContext) ensureService(cmd *cobra.Command) (*library.Service, error) {
	c.serviceOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.serviceErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
		if err != nil {
			c.serviceErr = fmt.Errorf("init logger: %w", err)
			return
		}
		svc, err := library.New(cfg, logger)
		if err != nil {
			c.serviceErr = err
			return
		}
		c.service = svc
	})
	return c.service, c.serviceErr
}

// runContext tags the command context with this invocation's run id.
func (c *commandContext) runContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithRunID(ctx, c.runID)
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
