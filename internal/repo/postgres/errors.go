package postgres

import (
	"errors"
	"fmt"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapErr — коды Postgres в доменные ошибки; обрыв соединения — domain.ErrStoreUnavailable.
func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrConflict, pgErr.ConstraintName)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return domain.StoreUnavailable(op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// validID — id в БД имеют тип UUID; иной формат заведомо не найдётся.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
