package sqlstore

import (
	"context"
	"fmt"

	"liftlog/internal/models"
)

// StatsRepository журнал подходов в таблице set_records.
// Порядок записей задаётся id.
type StatsRepository struct {
	db *DB
}

// NewStatsRepository создаёт репозиторий журнала
func NewStatsRepository(db *DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Ensure проверяет, что журнал чата читается
func (r *StatsRepository) Ensure(ctx context.Context, chatID int64) error {
	_, err := r.Load(ctx, chatID)
	return err
}

// Load возвращает журнал чата в порядке записи
func (r *StatsRepository) Load(ctx context.Context, chatID int64) ([]models.SetRecord, error) {
	rows, err := r.db.QueryContext(ctx, r.db.rebind(`
		SELECT chat_id, date, muscle_group, exercise, run, weight, reps
		FROM set_records
		WHERE chat_id = ?
		ORDER BY id`), chatID)
	if err != nil {
		return nil, fmt.Errorf("чтение журнала чата %d: %w", chatID, err)
	}
	defer rows.Close()

	var records []models.SetRecord
	for rows.Next() {
		var rec models.SetRecord
		var date string
		if err := rows.Scan(&rec.ChatID, &date, &rec.Group, &rec.Exercise, &rec.Run, &rec.Weight, &rec.Reps); err != nil {
			return nil, fmt.Errorf("чтение журнала чата %d: %w", chatID, err)
		}
		if rec.Date, err = models.ParseDay(date); err != nil {
			return nil, fmt.Errorf("дата %q в журнале чата %d: %w", date, chatID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Append дописывает подходы одной транзакцией
func (r *StatsRepository) Append(ctx context.Context, chatID int64, records ...models.SetRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := r.db.rebind(`
		INSERT INTO set_records (chat_id, date, muscle_group, exercise, run, weight, reps)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, query,
			chatID, rec.Date.Format(models.DateLayout), rec.Group, rec.Exercise, rec.Run, rec.Weight, rec.Reps,
		); err != nil {
			return fmt.Errorf("запись подхода чата %d: %w", chatID, err)
		}
	}
	return tx.Commit()
}

// DropLast удаляет последний подход чата; пустой журнал не ошибка
func (r *StatsRepository) DropLast(ctx context.Context, chatID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.rebind(`
		DELETE FROM set_records
		WHERE id = (SELECT MAX(id) FROM set_records WHERE chat_id = ?)`), chatID)
	if err != nil {
		return false, fmt.Errorf("удаление подхода чата %d: %w", chatID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
