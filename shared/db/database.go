package db

import (
	"database/sql"
)

// Database abstracts the lifecycle of a SQL database connection.
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
}
