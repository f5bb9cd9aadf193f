// internal/app/bootstrap/dbdeps.go
package bootstrap

import "database/sql"

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	// DB is the Postgres pool, opened through the pgx stdlib driver.
	DB *sql.DB
}
