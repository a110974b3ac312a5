package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm/clause"
)

// ErrInvalidListReference is returned when the store rejects a ListId that
// does not name an existing list.
var ErrInvalidListReference = errors.New("list reference does not exist")

const foreignKeyViolation = "23503"

// Page is an offset/limit window over a result set.
type Page struct {
	Offset int
	Limit  int
}

func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return ErrInvalidListReference
	}
	return err
}

// column builds a quoted identifier; the tables use PascalCase names.
func column(name string) clause.Column {
	return clause.Column{Name: name}
}

// newestFirst orders by creation time, descending; the primary key breaks ties.
func newestFirst(idColumn string) clause.OrderBy {
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: column("CreatedDate"), Desc: true},
		{Column: column(idColumn), Desc: true},
	}}
}
