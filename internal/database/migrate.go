package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	schema "quiz-master/database"
	"quiz-master/internal/config"
	"quiz-master/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// RunMigrations applies the embedded schema for driver.
func RunMigrations(db *sql.DB, driver string) error {
	switch driver {
	case config.DriverPostgres:
		return runPostgresMigrations(db)
	case config.DriverOracle:
		return runOracleMigrations(db)
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
}

func runPostgresMigrations(db *sql.DB) error {
	src, err := iofs.New(schema.Migrations, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Get().Info("Migrations completed successfully",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
	return nil
}

// golang-migrate has no go-ora driver, so oracle files are executed
// statement by statement. Objects that already exist are skipped.
func runOracleMigrations(db *sql.DB) error {
	const dir = "migrations/oracle"
	entries, err := fs.ReadDir(schema.Migrations, dir)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := fs.ReadFile(schema.Migrations, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}

		for _, stmt := range splitStatements(string(content)) {
			if _, err := db.Exec(stmt); err != nil {
				if isAlreadyExists(err) {
					continue
				}
				return fmt.Errorf("could not execute migration %s: %w", name, err)
			}
		}
		logger.Get().Info("Executed migration", zap.String("file", name))
	}

	logger.Get().Info("Migrations completed successfully")
	return nil
}

func splitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		if s := strings.TrimSpace(part); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// ORA-00955: name is already used by an existing object
// ORA-01408: such column list already indexed
func isAlreadyExists(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "ORA-00955") || strings.Contains(msg, "ORA-01408")
}
