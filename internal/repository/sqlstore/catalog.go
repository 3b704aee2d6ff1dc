package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"liftlog/internal/models"
)

// CatalogRepository каталог упражнений в таблице exercise_catalog.
// Уникальность названия держит UNIQUE, mu упорядочивает изменения внутри процесса.
type CatalogRepository struct {
	db *DB
	mu sync.Mutex
}

// NewCatalogRepository создаёт репозиторий каталога
func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Groups группы мышц в порядке появления
func (r *CatalogRepository) Groups(ctx context.Context) ([]string, error) {
	return r.strings(ctx, `
		SELECT muscle_group FROM exercise_catalog
		GROUP BY muscle_group
		ORDER BY MIN(id)`)
}

// Exercises упражнения группы в порядке добавления
func (r *CatalogRepository) Exercises(ctx context.Context, group string) ([]string, error) {
	return r.strings(ctx, `
		SELECT exercise FROM exercise_catalog
		WHERE muscle_group = ?
		ORDER BY id`, group)
}

// AddIfAbsent добавляет упражнение, если такого названия ещё нет
func (r *CatalogRepository) AddIfAbsent(ctx context.Context, group, exercise string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, r.db.rebind(`
		INSERT INTO exercise_catalog (muscle_group, exercise)
		VALUES (?, ?)
		ON CONFLICT (exercise) DO NOTHING`), group, exercise)
	if err != nil {
		return false, fmt.Errorf("добавление упражнения %q: %w", exercise, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DropLast удаляет последнее добавленное упражнение
func (r *CatalogRepository) DropLast(ctx context.Context) (models.CatalogEntry, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.CatalogEntry{}, false, err
	}
	defer tx.Rollback()

	var id int64
	var e models.CatalogEntry
	err = tx.QueryRowContext(ctx, `
		SELECT id, muscle_group, exercise FROM exercise_catalog
		ORDER BY id DESC LIMIT 1`).Scan(&id, &e.Group, &e.Exercise)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CatalogEntry{}, false, nil
	}
	if err != nil {
		return models.CatalogEntry{}, false, err
	}

	if _, err := tx.ExecContext(ctx, r.db.rebind(`DELETE FROM exercise_catalog WHERE id = ?`), id); err != nil {
		return models.CatalogEntry{}, false, fmt.Errorf("удаление упражнения %q: %w", e.Exercise, err)
	}
	if err := tx.Commit(); err != nil {
		return models.CatalogEntry{}, false, err
	}
	return e, true, nil
}

// Seed заполняет пустой каталог начальным списком
func (r *CatalogRepository) Seed(ctx context.Context, entries []models.CatalogEntry) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercise_catalog`).Scan(&count); err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	added := 0
	for _, e := range entries {
		ok, err := r.AddIfAbsent(ctx, e.Group, e.Exercise)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

func (r *CatalogRepository) strings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, r.db.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
