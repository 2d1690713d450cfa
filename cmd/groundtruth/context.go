package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/JaimeStill/groundtruth/internal/annotators"
	"github.com/JaimeStill/groundtruth/internal/assignments"
	"github.com/JaimeStill/groundtruth/internal/config"
	"github.com/JaimeStill/groundtruth/internal/infrastructure"
	"github.com/JaimeStill/groundtruth/internal/results"
	"github.com/JaimeStill/groundtruth/internal/schema"
	"github.com/JaimeStill/groundtruth/pkg/database"
)

type commandContext struct {
	configFlag *string
	stderr     io.Writer

	configOnce sync.Once
	config     *config.Config
	configErr  error

	dbOnce sync.Once
	db     *sql.DB
	dbErr  error
	logger *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		stderr:     os.Stderr,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		path := config.BaseConfigFile
		if c.configFlag != nil && strings.TrimSpace(*c.configFlag) != "" {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.LoadFile(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = infrastructure.NewLogger(&cfg.Logging, c.stderr)
	})
	return c.config, c.configErr
}

func (c *commandContext) database() (*sql.DB, error) {
	c.dbOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.dbErr = err
			return
		}

		sys, err := database.New(&cfg.Database, c.logger)
		if err != nil {
			c.dbErr = err
			return
		}

		if cfg.Database.AutoMigrate {
			if err := schema.Up(&cfg.Database); err != nil {
				sys.Connection().Close()
				c.dbErr = fmt.Errorf("migrate database: %w", err)
				return
			}
		}

		c.db = sys.Connection()
	})
	return c.db, c.dbErr
}

func (c *commandContext) assignments() (assignments.System, error) {
	db, err := c.database()
	if err != nil {
		return nil, err
	}
	return assignments.New(db, c.logger), nil
}

func (c *commandContext) annotators() (annotators.System, error) {
	db, err := c.database()
	if err != nil {
		return nil, err
	}
	return annotators.New(db, c.logger), nil
}

func (c *commandContext) results() (results.System, error) {
	db, err := c.database()
	if err != nil {
		return nil, err
	}
	return results.New(db, c.logger), nil
}

func (c *commandContext) close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
