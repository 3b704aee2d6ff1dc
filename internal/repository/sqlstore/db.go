package sqlstore

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

var schema = map[string][]string{
	DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS set_records (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id      INTEGER NOT NULL,
			date         TEXT NOT NULL,
			muscle_group TEXT NOT NULL,
			exercise     TEXT NOT NULL,
			run          INTEGER NOT NULL,
			weight       REAL NOT NULL,
			reps         REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_set_records_chat ON set_records (chat_id, id)`,
		`CREATE TABLE IF NOT EXISTS exercise_catalog (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			muscle_group TEXT NOT NULL,
			exercise     TEXT NOT NULL UNIQUE
		)`,
	},
	DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS public.set_records (
			id           BIGSERIAL PRIMARY KEY,
			chat_id      BIGINT NOT NULL,
			date         TEXT NOT NULL,
			muscle_group TEXT NOT NULL,
			exercise     TEXT NOT NULL,
			run          INTEGER NOT NULL,
			weight       DOUBLE PRECISION NOT NULL,
			reps         DOUBLE PRECISION NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_set_records_chat ON public.set_records (chat_id, id)`,
		`CREATE TABLE IF NOT EXISTS public.exercise_catalog (
			id           BIGSERIAL PRIMARY KEY,
			muscle_group TEXT NOT NULL,
			exercise     TEXT NOT NULL UNIQUE
		)`,
	},
}

// DB соединение с базой и её диалект
type DB struct {
	*sql.DB
	dialect string
}

// Open подключается к базе и создаёт таблицы
func Open(dialect, dsn string) (*DB, error) {
	stmts, ok := schema[dialect]
	if !ok {
		return nil, fmt.Errorf("неизвестный диалект %q", dialect)
	}

	conn, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("открытие базы %s: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		// sqlite не любит параллельных писателей
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("подключение к базе %s: %w", dialect, err)
	}

	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("создание таблиц: %w", err)
		}
	}

	return &DB{DB: conn, dialect: dialect}, nil
}

// rebind заменяет ? на $1, $2 ... для postgres
func (db *DB) rebind(query string) string {
	if db.dialect != DialectPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
