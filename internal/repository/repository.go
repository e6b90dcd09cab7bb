// internal/repository/repository.go
package repository

import (
	"errors"

	"github.com/dangerclosesec/colab/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// uniqueConstraints maps unique constraint names to domain errors.
var uniqueConstraints = map[string]error{
	"users_username_key":   domain.ErrUsernameTaken,
	"users_email_key":      domain.ErrEmailTaken,
	"users_git_handle_key": domain.ErrGitHandleTaken,
}

// translateError turns known PostgreSQL errors into domain errors and
// returns everything else untouched.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if domainErr, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
			return domainErr
		}
	}
	return err
}
