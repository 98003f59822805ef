package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// Wrap adapts an open connection for the repositories in this package.
func Wrap(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, "postgres")
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == uniqueViolation
	}
	return false
}
