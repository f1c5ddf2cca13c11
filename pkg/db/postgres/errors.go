package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const uniqueViolation = "unique_violation"

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint failure.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == uniqueViolation
	}
	return false
}
