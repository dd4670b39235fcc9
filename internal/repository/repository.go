// Package repository implements Postgres persistence, one repository per
// aggregate over a shared pgx connection pool. Multi-step writes run in a
// single transaction; missing rows surface as package sentinel errors.
package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// setClause accumulates dynamic UPDATE assignments with positional args.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, value any) {
	s.args = append(s.args, value)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

func (s *setClause) next(value any) string {
	s.args = append(s.args, value)
	return fmt.Sprintf("$%d", len(s.args))
}
