package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// IsExclusionConflict recognizes a Postgres exclusion/unique violation
// raised by the overlap constraint on appointments. Last line of defense
// behind the transactional conflict re-check.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// 23P01 exclusion_violation, 23505 unique_violation
	return pgErr.Code == "23P01" || pgErr.Code == "23505"
}
