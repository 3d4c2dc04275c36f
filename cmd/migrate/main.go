package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/infrastructure/config"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/infrastructure/logger"
	"github.com/Tiago-beta/sabor-d-minas-sub002/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

// command is one migrate subcommand. Commands without needsDB run
// against the migrations directory alone.
type command struct {
	needsDB bool
	run     func(e env, args []string) error
}

// env carries what a command handler may need
type env struct {
	path     string
	log      *zap.Logger
	migrator *migration.Migrator
}

var commands = map[string]command{
	"up": {
		needsDB: true,
		run: func(e env, _ []string) error {
			return e.migrator.Up()
		},
	},
	"down": {
		needsDB: true,
		run: func(e env, _ []string) error {
			return e.migrator.Down()
		},
	},
	"step": {
		needsDB: true,
		run: func(e env, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("usage: migrate step <n>")
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			return e.migrator.Steps(n)
		},
	},
	"goto": {
		needsDB: true,
		run: func(e env, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("usage: migrate goto <version>")
			}
			version, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return e.migrator.GoTo(uint(version))
		},
	},
	"version": {
		needsDB: true,
		run: func(e env, _ []string) error {
			version, dirty, err := e.migrator.Version()
			if err != nil {
				return err
			}
			if version == 0 {
				e.log.Info("No migrations applied")
				return nil
			}
			e.log.Info("Current schema version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty))
			return nil
		},
	},
	"force": {
		needsDB: true,
		run: func(e env, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("usage: migrate force <version>")
			}
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			e.log.Warn("Overwriting schema version record")
			return e.migrator.Force(version)
		},
	},
	"drop": {
		needsDB: true,
		run: func(e env, args []string) error {
			confirmed := false
			for _, arg := range args {
				if arg == "-confirm" || arg == "--confirm" {
					confirmed = true
				}
			}
			if !confirmed {
				return fmt.Errorf("refusing to drop the schema without -confirm")
			}
			return e.migrator.Drop()
		},
	},
	"create": {
		run: func(e env, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("usage: migrate create <name> [description]")
			}
			description := ""
			if len(args) > 1 {
				description = args[1]
			}
			mf, err := migration.CreateMigration(e.path, args[0], description)
			if err != nil {
				return err
			}
			e.log.Info("Migration created",
				zap.String("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath))
			return nil
		},
	},
	"list": {
		run: func(e env, _ []string) error {
			migrations, err := migration.ListMigrations(e.path)
			if err != nil {
				return err
			}
			if len(migrations) == 0 {
				e.log.Info("No migrations found")
				return nil
			}
			for _, m := range migrations {
				fmt.Println("  -", m)
			}
			return nil
		},
	},
}

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "path to the migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	e := env{path: resolveMigrationsPath(migrationsPath), log: log}
	log.Info("Migration tool",
		zap.String("command", args[0]),
		zap.String("migrations_path", e.path))

	if cmd.needsDB {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Failed to load configuration", zap.Error(err))
		}
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to open database", zap.Error(err))
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatal("Database is unreachable", zap.Error(err))
		}

		m, err := migration.New(db, e.path, log)
		if err != nil {
			log.Fatal("Failed to create migrator", zap.Error(err))
		}
		defer m.Close()
		e.migrator = m
	}

	if err := cmd.run(e, args[1:]); err != nil {
		log.Fatal("Command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

// resolveMigrationsPath picks the migrations directory. An explicit
// -path wins; otherwise it looks next to the working directory, then
// relative to the installed binary.
func resolveMigrationsPath(flagPath string) string {
	path := flagPath
	if path == "" {
		path = defaultMigrationsPath
		if _, err := os.Stat(path); err != nil {
			if execPath, err := os.Executable(); err == nil {
				candidate := filepath.Join(filepath.Dir(execPath), "..", "..", defaultMigrationsPath)
				if _, err := os.Stat(candidate); err == nil {
					path = candidate
				}
			}
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func printUsage() {
	fmt.Println(`Schema migrations for the sabor de minas wholesale backend.

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    apply all pending migrations
  down                  roll back all migrations
  step <n>              apply n migrations, negative n rolls back
  goto <version>        migrate to a specific version
  version               show the current schema version
  force <version>       overwrite the recorded version without running migrations
  drop -confirm         drop every object in the database
  create <name> [desc]  write a new up/down migration file pair
  list                  list the migrations on disk

Flags:
  -path string          path to the migrations directory (default: ./migrations)
  -log-level string     log level: debug, info, warn, error (default: info)

Connection:
  DATABASE_URL when set is used as-is; otherwise the connection is
  assembled from SABOR_DATABASE_HOST, SABOR_DATABASE_PORT,
  SABOR_DATABASE_USER, SABOR_DATABASE_PASSWORD, SABOR_DATABASE_DBNAME
  and SABOR_DATABASE_SSLMODE, or their config.toml equivalents.

Examples:
  migrate up
  migrate step -1
  migrate create add_orders_operator_code "track the PDV operator"
  migrate version`)
}
