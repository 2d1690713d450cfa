package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"github.com/JaimeStill/groundtruth/internal/config"
	"github.com/JaimeStill/groundtruth/internal/schema"
)

const usage = "usage: migrate [-config config.toml] [-up | -down | -steps N | -version | -force V]"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(out)

	configPath := fs.String("config", config.BaseConfigFile, "base config file")
	up := fs.Bool("up", false, "apply all pending migrations")
	down := fs.Bool("down", false, "revert all migrations")
	steps := fs.Int("steps", 0, "apply N migrations, or revert -N")
	version := fs.Bool("version", false, "print the current schema version")
	force := fs.Int("force", -1, "mark version V as applied without running it")

	if err := fs.Parse(args); err != nil {
		return err
	}

	forced := false
	fs.Visit(func(f *flag.Flag) { forced = forced || f.Name == "force" })

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		return err
	}

	m, err := schema.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer m.Close()

	fmt.Fprintf(out, "driver: %s\n", cfg.Database.Driver)

	switch {
	case *version:
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Fprintln(out, "version: none")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Fprintf(out, "version: %d, dirty: %v\n", v, dirty)
	case forced:
		if err := m.Force(*force); err != nil {
			return fmt.Errorf("force version %d: %w", *force, err)
		}
		fmt.Fprintf(out, "forced version %d\n", *force)
	case *up:
		if err := ignoreNoChange(m.Up()); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		fmt.Fprintln(out, "schema up to date")
	case *down:
		if err := ignoreNoChange(m.Down()); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		fmt.Fprintln(out, "schema reverted")
	case *steps != 0:
		if err := ignoreNoChange(m.Steps(*steps)); err != nil {
			return fmt.Errorf("migrate %d steps: %w", *steps, err)
		}
		fmt.Fprintf(out, "applied %d steps\n", *steps)
	default:
		fmt.Fprintln(out, usage)
		fs.PrintDefaults()
	}
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
