package database

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Pragmas applied to every SQLite connection.
var sqlitePragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"journal_mode(WAL)",
}

// Config selects a driver and carries its connection parameters. Host
// through SSLMode are read for PostgreSQL; Path is read for SQLite. The pool
// settings apply to both.
type Config struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	Name            string `toml:"name"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	SSLMode         string `toml:"ssl_mode"`
	Path            string `toml:"path"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime string `toml:"conn_max_lifetime"`
	ConnTimeout     string `toml:"conn_timeout"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// Env names the environment variable read for each Config field. Empty
// names are skipped.
type Env struct {
	Driver          string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	Path            string
	MaxOpenConns    string
	MaxIdleConns    string
	ConnMaxLifetime string
	ConnTimeout     string
	AutoMigrate     string
}

// Pool is the parsed form of the pool settings.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	ConnTimeout time.Duration
}

// field binds one Config field for env loading and merging. Exactly one of
// str, num, or flag is set.
type field struct {
	str  *string
	num  *int
	flag *bool
}

func (c *Config) fields() []field {
	return []field{
		{str: &c.Driver},
		{str: &c.Host},
		{num: &c.Port},
		{str: &c.Name},
		{str: &c.User},
		{str: &c.Password},
		{str: &c.SSLMode},
		{str: &c.Path},
		{num: &c.MaxOpenConns},
		{num: &c.MaxIdleConns},
		{str: &c.ConnMaxLifetime},
		{str: &c.ConnTimeout},
		{flag: &c.AutoMigrate},
	}
}

// names must stay in Config.fields order.
func (e *Env) names() []string {
	return []string{
		e.Driver,
		e.Host,
		e.Port,
		e.Name,
		e.User,
		e.Password,
		e.SSLMode,
		e.Path,
		e.MaxOpenConns,
		e.MaxIdleConns,
		e.ConnMaxLifetime,
		e.ConnTimeout,
		e.AutoMigrate,
	}
}

// Pool parses the pool settings. Call after Finalize; unparsable durations are zero.
func (c *Config) Pool() Pool {
	lifetime, _ := time.ParseDuration(c.ConnMaxLifetime)
	timeout, _ := time.ParseDuration(c.ConnTimeout)
	return Pool{
		MaxOpen:     c.MaxOpenConns,
		MaxIdle:     c.MaxIdleConns,
		MaxLifetime: lifetime,
		ConnTimeout: timeout,
	}
}

// DriverName returns the database/sql driver name registered for Driver.
func (c *Config) DriverName() string {
	if c.Driver == DriverSQLite {
		return "sqlite"
	}
	return "pgx"
}

// Dsn returns the data source name handed to sql.Open.
func (c *Config) Dsn() string {
	if c.Driver == DriverSQLite {
		var b strings.Builder
		b.WriteString(c.Path)
		for i, p := range sqlitePragmas {
			if i == 0 {
				b.WriteByte('?')
			} else {
				b.WriteByte('&')
			}
			b.WriteString("_pragma=")
			b.WriteString(p)
		}
		return b.String()
	}

	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Name, c.User, c.Password, c.SSLMode,
	)
}

// MigrationURL returns the URL golang-migrate expects for Driver.
func (c *Config) MigrationURL() string {
	if c.Driver == DriverSQLite {
		return "sqlite://" + c.Path
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Finalize applies defaults, then environment overrides from env (may be
// nil), then validates.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields with the non-zero values of overlay.
func (c *Config) Merge(overlay *Config) {
	base, over := c.fields(), overlay.fields()
	for i, f := range over {
		switch {
		case f.str != nil && *f.str != "":
			*base[i].str = *f.str
		case f.num != nil && *f.num != 0:
			*base[i].num = *f.num
		case f.flag != nil && *f.flag:
			*base[i].flag = true
		}
	}
}

func (c *Config) loadDefaults() {
	setString := func(p *string, v string) {
		if *p == "" {
			*p = v
		}
	}
	setInt := func(p *int, v int) {
		if *p == 0 {
			*p = v
		}
	}

	setString(&c.Driver, DriverPostgres)
	setString(&c.Host, "localhost")
	setInt(&c.Port, 5432)
	setString(&c.SSLMode, "disable")
	setString(&c.Path, "extracted_texts.db")
	setInt(&c.MaxOpenConns, 25)
	setInt(&c.MaxIdleConns, 5)
	setString(&c.ConnMaxLifetime, "15m")
	setString(&c.ConnTimeout, "5s")
}

func (c *Config) loadEnv(env *Env) {
	names := env.names()
	for i, f := range c.fields() {
		if names[i] == "" {
			continue
		}
		v := os.Getenv(names[i])
		if v == "" {
			continue
		}

		switch {
		case f.str != nil:
			*f.str = v
		case f.num != nil:
			if n, err := strconv.Atoi(v); err == nil {
				*f.num = n
			}
		case f.flag != nil:
			if b, err := strconv.ParseBool(v); err == nil {
				*f.flag = b
			}
		}
	}
}

func (c *Config) validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.Name == "" {
			return fmt.Errorf("name required")
		}
		if c.User == "" {
			return fmt.Errorf("user required")
		}
	case DriverSQLite:
		if c.Path == "" {
			return fmt.Errorf("path required")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
	}

	if c.MaxOpenConns < 1 {
		return fmt.Errorf("max_open_conns must be positive, got %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return fmt.Errorf("max_idle_conns cannot exceed max_open_conns (%d > %d)", c.MaxIdleConns, c.MaxOpenConns)
	}
	if _, err := time.ParseDuration(c.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid conn_max_lifetime: %w", err)
	}
	if _, err := time.ParseDuration(c.ConnTimeout); err != nil {
		return fmt.Errorf("invalid conn_timeout: %w", err)
	}
	return nil
}
