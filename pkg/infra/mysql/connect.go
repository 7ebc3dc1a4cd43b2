package mysql

import (
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Connect opens and pings a MySQL connection. The DSN must carry
// parseTime=true so TIMESTAMP columns scan into time.Time.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", dsn)
	return db, errors.Wrap(err, "failed to connect to mysql")
}
