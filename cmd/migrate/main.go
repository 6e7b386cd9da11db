package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/config"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
)

func main() {
	migrationDir := flag.String("path", "migrations", "Path to migration files")
	flag.Usage = printUsage
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(2)
	}

	m, err := migrate.New("file://"+*migrationDir, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("path", *migrationDir).Msg("Migration failed to initialize")
	}
	defer m.Close()

	if err := run(m, args, log); err != nil {
		log.Fatal().Err(err).Str("command", args[0]).Msg("Migration failed")
	}
}

func run(m *migrate.Migrate, args []string, log zerolog.Logger) error {
	switch args[0] {
	case "up":
		if err := ignoreNoChange(m.Up()); err != nil {
			return err
		}
	case "down":
		steps, err := intArg(args, 1, 1)
		if err != nil {
			return err
		}
		if err := ignoreNoChange(m.Steps(-steps)); err != nil {
			return err
		}
	case "goto":
		v, err := intArg(args, 1, -1)
		if err != nil || v < 0 {
			return fmt.Errorf("goto requires a version")
		}
		if err := ignoreNoChange(m.Migrate(uint(v))); err != nil {
			return err
		}
	case "redo":
		// Roll the latest migration back and apply it again.
		if err := m.Steps(-1); err != nil {
			return err
		}
		if err := m.Steps(1); err != nil {
			return err
		}
	case "force":
		v, err := intArg(args, 1, -1)
		if err != nil || v < 0 {
			return fmt.Errorf("force requires a version")
		}
		if err := m.Force(v); err != nil {
			return err
		}
	case "version":
	default:
		printUsage()
		os.Exit(2)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Str("command", args[0]).Msg("No migrations applied")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("command", args[0]).Uint("version", version).Bool("dirty", dirty).Msg("Schema version")
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// intArg parses args[i], returning def when it is absent.
func intArg(args []string, i, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid number %q", args[i])
	}
	return n, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: migrate [flags] <command>")
	fmt.Fprintln(os.Stderr, "Commands: up, down [steps], goto <version>, redo, version, force <version>")
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}
