package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/clerkio/backend/internal/infrastructure/config"
	"github.com/clerkio/backend/internal/infrastructure/logger"
	"github.com/clerkio/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const usage = `shop database migration tool

usage: migrate [flags] <command> [arguments]

commands:
  up                    apply all pending migrations
  down                  roll back all migrations
  step <n>              apply n migrations (negative rolls back)
  goto <version>        migrate to a specific version
  version               print the current schema version
  force <version>       overwrite the recorded version (repair tool)
  drop -confirm         drop every database object
  create <name> [desc]  create an empty up/down migration pair
  list                  list migration pairs on disk

flags:
  -path string          migrations directory (default "migrations")
  -log-level string     debug, info, warn or error (default "info")

database settings come from config.toml or SHOP_DATABASE_* environment
variables.
`

func main() {
	pathFlag := flag.String("path", "migrations", "path to the migrations directory")
	levelFlag := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      *levelFlag,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	dir, err := filepath.Abs(*pathFlag)
	if err != nil {
		log.Fatal("Resolving migrations path failed", zap.Error(err))
	}

	if err := run(args, dir, log); err != nil {
		log.Fatal("Command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

func run(args []string, dir string, log *zap.Logger) error {
	command := args[0]
	rest := args[1:]

	// create and list work straight off the filesystem
	switch command {
	case "create":
		if len(rest) == 0 {
			return fmt.Errorf("usage: migrate create <name> [description]")
		}
		description := ""
		if len(rest) > 1 {
			description = rest[1]
		}
		mf, err := migration.CreateMigration(dir, rest[0], description)
		if err != nil {
			return err
		}
		log.Info("Migration created",
			zap.String("version", mf.Version),
			zap.String("up", mf.UpPath),
			zap.String("down", mf.DownPath),
		)
		return nil

	case "list":
		names, err := migration.ListMigrations(dir)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			log.Info("No migrations found", zap.String("path", dir))
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	mg, err := migration.New(db, dir, log)
	if err != nil {
		return err
	}
	defer mg.Close()

	switch command {
	case "up":
		return mg.Up()

	case "down":
		return mg.Down()

	case "step":
		n, err := intArg(rest, "migrate step <n>")
		if err != nil {
			return err
		}
		return mg.Steps(n)

	case "goto":
		if len(rest) == 0 {
			return fmt.Errorf("usage: migrate goto <version>")
		}
		v, err := strconv.ParseUint(rest[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", rest[0])
		}
		return mg.GoTo(uint(v))

	case "version":
		version, dirty, err := mg.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			log.Info("No migrations applied yet")
		} else {
			log.Info("Current schema version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}
		return nil

	case "force":
		v, err := intArg(rest, "migrate force <version>")
		if err != nil {
			return err
		}
		return mg.Force(v)

	case "drop":
		if !hasConfirmFlag(rest) {
			return fmt.Errorf("drop destroys all data; rerun as: migrate drop -confirm")
		}
		return mg.Drop()
	}

	flag.Usage()
	return fmt.Errorf("unknown command %q", command)
}

func intArg(args []string, usageHint string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("usage: %s", usageHint)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[0])
	}
	return n, nil
}

func hasConfirmFlag(args []string) bool {
	for _, a := range args {
		if a == "-confirm" || a == "--confirm" {
			return true
		}
	}
	return false
}
