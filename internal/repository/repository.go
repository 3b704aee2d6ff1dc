package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"liftlog/internal/models"
	"liftlog/internal/repository/csvstore"
	"liftlog/internal/repository/sqlstore"

	"github.com/rs/zerolog/log"
)

// ErrUnknownDriver неизвестный тип хранилища
var ErrUnknownDriver = errors.New("неизвестный STORAGE_DRIVER")

// StatsRepository журнал подходов по чатам
type StatsRepository interface {
	Ensure(ctx context.Context, chatID int64) error
	Load(ctx context.Context, chatID int64) ([]models.SetRecord, error)
	Append(ctx context.Context, chatID int64, records ...models.SetRecord) error
	DropLast(ctx context.Context, chatID int64) (bool, error)
}

// ExerciseCatalog общий каталог упражнений по группам мышц
type ExerciseCatalog interface {
	Groups(ctx context.Context) ([]string, error)
	Exercises(ctx context.Context, group string) ([]string, error)
	AddIfAbsent(ctx context.Context, group, exercise string) (bool, error)
	DropLast(ctx context.Context) (models.CatalogEntry, bool, error)
}

// Options параметры открытия хранилища
type Options struct {
	Driver      string // csv, sqlite, postgres
	StatsDir    string
	CatalogPath string
	SQLitePath  string
	PostgresDSN string
}

// Repository содержит все репозитории
type Repository struct {
	Stats   StatsRepository
	Catalog ExerciseCatalog

	closer io.Closer
}

// Open открывает хранилище выбранного типа.
// SQL каталог при первом запуске заполняется из CSV файла каталога.
func Open(ctx context.Context, opts Options) (*Repository, error) {
	switch opts.Driver {
	case "", "csv":
		catalog, err := csvstore.OpenCatalog(opts.CatalogPath)
		if err != nil {
			return nil, err
		}
		stats, err := csvstore.NewStats(opts.StatsDir)
		if err != nil {
			return nil, err
		}
		return &Repository{Stats: stats, Catalog: catalog}, nil

	case sqlstore.DialectSQLite, sqlstore.DialectPostgres:
		dsn := opts.SQLitePath
		if opts.Driver == sqlstore.DialectPostgres {
			dsn = opts.PostgresDSN
		}
		db, err := sqlstore.Open(opts.Driver, dsn)
		if err != nil {
			return nil, err
		}
		catalog := sqlstore.NewCatalogRepository(db)
		if err := seedCatalog(ctx, catalog, opts.CatalogPath); err != nil {
			db.Close()
			return nil, err
		}
		return &Repository{
			Stats:   sqlstore.NewStatsRepository(db),
			Catalog: catalog,
			closer:  db,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
}

// WatchCatalog включает перечитывание каталога при ручной правке файла.
// Для SQL хранилища ничего не делает.
func (r *Repository) WatchCatalog(ctx context.Context) error {
	w, ok := r.Catalog.(interface {
		Watch(ctx context.Context) error
	})
	if !ok {
		return nil
	}
	return w.Watch(ctx)
}

func seedCatalog(ctx context.Context, catalog *sqlstore.CatalogRepository, path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("открытие каталога %s: %w", path, err)
	}
	defer f.Close()

	entries, err := csvstore.ReadCatalog(f)
	if err != nil {
		return fmt.Errorf("чтение каталога %s: %w", path, err)
	}
	added, err := catalog.Seed(ctx, entries)
	if err != nil {
		return fmt.Errorf("заполнение каталога: %w", err)
	}
	if added > 0 {
		log.Info().Int("added", added).Str("path", path).Msg("каталог упражнений заполнен")
	}
	return nil
}

// Close закрывает соединение с БД, если оно есть
func (r *Repository) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
