package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

const usage = "usage: migrate [up|down|steps N|version|force V]"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	migrationsPath, err := findMigrationsDir()
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(migrationsPath), dbURL)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Printf("close migrator: source=%v database=%v", srcErr, dbErr)
		}
	}()

	if err := run(m, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(m *migrate.Migrate, args []string) error {
	cmd := "up"
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "up":
		return report("up", m.Up())
	case "down":
		return report("down", m.Down())
	case "steps":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return report(fmt.Sprintf("steps %d", n), m.Steps(n))
	case "force":
		v, err := intArg(args)
		if err != nil {
			return err
		}
		return report(fmt.Sprintf("force %d", v), m.Force(v))
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Println("No migrations applied")
			return nil
		}
		if err != nil {
			return err
		}
		log.Printf("Version %d (dirty=%t)", version, dirty)
		return nil
	default:
		return errors.New(usage)
	}
}

func report(name string, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Printf("Migration %s: no change", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s: %w", name, err)
	}
	log.Printf("Migration %s successful", name)
	return nil
}

func intArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, errors.New(usage)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", usage, err)
	}
	return n, nil
}

// findMigrationsDir looks for migrations/ above the working directory, then
// next to the executable.
func findMigrationsDir() (string, error) {
	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		current := cwd
		for i := 0; i < 6; i++ {
			candidates = append(candidates, filepath.Join(current, "migrations"))
			parent := filepath.Dir(current)
			if parent == current {
				break
			}
			current = parent
		}
	}
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		candidates = append(candidates,
			filepath.Join(exeDir, "migrations"),
			filepath.Join(exeDir, "..", "migrations"),
		)
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
	}
	return "", errors.New("migrations directory not found")
}
