package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// isUniqueViolation - нарушение уникального индекса (23505)
func isUniqueViolation(err error) bool {
	return hasPgCode(err, pgerrcode.UniqueViolation)
}

// isForeignKeyViolation - ссылка на несуществующую запись (23503)
func isForeignKeyViolation(err error) bool {
	return hasPgCode(err, pgerrcode.ForeignKeyViolation)
}
