package repository

import (
	"context"
	"fmt"

	"quiz-master/internal/config"
)

// Dialect selects the SQL that differs between the supported databases.
// Everything else is portable and only needs Rebind.
type Dialect string

const (
	DialectOracle   Dialect = Dialect(config.DriverOracle)
	DialectPostgres Dialect = Dialect(config.DriverPostgres)
)

// NextIDQuery returns the statement that draws the next value of sequence.
func (d Dialect) NextIDQuery(sequence string) string {
	if d == DialectPostgres {
		return fmt.Sprintf("SELECT nextval('%s')", sequence)
	}
	return fmt.Sprintf("SELECT %s.NEXTVAL FROM dual", sequence)
}

func nextID(ctx context.Context, exec DBTX, d Dialect, sequence string) (int64, error) {
	var id int64
	if err := exec.GetContext(ctx, &id, d.NextIDQuery(sequence)); err != nil {
		return 0, fmt.Errorf("failed to allocate id from %s: %w", sequence, err)
	}
	return id, nil
}
