package testsupport

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a private shared-cache in-memory sqlite database.
// Each call gets its own database so tests do not observe each other's rows.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", uuid.NewString()))
}
