package sqlstore

import (
	"database/sql"
	"fmt"

	"vetsoft/internal/platform/apperror"
)

// scanner lo cumplen *sql.Row y *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// expectRow traduce "0 filas afectadas" a ErrNotFound.
func expectRow(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, apperror.ErrNotFound)
	}
	return nil
}
