package database

import (
	"fmt"
	"strings"

	"quiz-master/internal/config"
	"quiz-master/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver ("pgx")
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/reflectx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver ("oracle")
	"go.uber.org/zap"
)

const (
	oracleDriverName   = "oracle"
	postgresDriverName = "pgx"
)

func init() {
	// go-ora binds positionally as :1, :2 ... which sqlx calls NAMED.
	sqlx.BindDriver(oracleDriverName, sqlx.NAMED)
}

// DriverName maps a configured db.driver to the database/sql driver name.
func DriverName(driver string) (string, error) {
	switch driver {
	case config.DriverOracle:
		return oracleDriverName, nil
	case config.DriverPostgres:
		return postgresDriverName, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// NewSQLXDB opens and pings the configured database.
func NewSQLXDB(cfg *config.Config) (*sqlx.DB, error) {
	driverName, err := DriverName(cfg.DB.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(driverName, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.DB.Driver, err)
	}

	if cfg.DB.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
		db.SetMaxIdleConns(cfg.DB.MaxOpenConns / 2)
	}

	// Oracle reports unquoted column names in upper case; struct tags are lower case.
	if driverName == oracleDriverName {
		db.Mapper = reflectx.NewMapperTagFunc("db", strings.ToUpper, strings.ToUpper)
	}

	logger.Get().Info("Connected to database",
		zap.String("driver", cfg.DB.Driver),
		zap.String("host", cfg.DB.Host),
		zap.Int("port", cfg.DB.Port))
	return db, nil
}
