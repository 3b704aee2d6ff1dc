package sqlstore

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"liftlog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(DialectSQLite, filepath.Join(t.TempDir(), "liftlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func record(chatID int64, date, exercise string, run int, weight, reps float64) models.SetRecord {
	d, err := models.ParseDay(date)
	if err != nil {
		panic(err)
	}
	return models.SetRecord{ChatID: chatID, Date: d, Group: "Ноги", Exercise: exercise, Run: run, Weight: weight, Reps: reps}
}

func TestRebind(t *testing.T) {
	pg := &DB{dialect: DialectPostgres}
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", pg.rebind("SELECT a FROM t WHERE x = ? AND y = ?"))

	lite := &DB{dialect: DialectSQLite}
	assert.Equal(t, "x = ?", lite.rebind("x = ?"))
}

func TestOpen_UnknownDialect(t *testing.T) {
	_, err := Open("oracle", "")
	assert.Error(t, err)
}

func TestStatsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStatsRepository(openTestDB(t))

	records, err := repo.Load(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, records)
	require.NoError(t, repo.Ensure(ctx, 42))

	dropped, err := repo.DropLast(ctx, 42)
	require.NoError(t, err)
	assert.False(t, dropped)

	prior := record(42, "2024-03-13", "Присед", 1, 60, 5)
	require.NoError(t, repo.Append(ctx, 42, prior))
	require.NoError(t, repo.Append(ctx, 7, record(7, "2024-03-13", "Жим", 1, 50, 8)))

	r1 := record(42, "2024-03-14", "Присед", 1, 70.5, 5)
	r2 := record(42, "2024-03-14", "Присед", 2, 100, 5)
	require.NoError(t, repo.Append(ctx, 42, r1, r2))

	records, err = repo.Load(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, []models.SetRecord{prior, r1, r2}, records)

	dropped, err = repo.DropLast(ctx, 42)
	require.NoError(t, err)
	assert.True(t, dropped)

	records, err = repo.Load(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, []models.SetRecord{prior, r1}, records)

	other, err := repo.Load(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, other, 1, "чужой журнал не тронут")
}

func TestCatalogRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(openTestDB(t))

	n, err := repo.Seed(ctx, []models.CatalogEntry{
		{Group: "Ноги", Exercise: "Присед"},
		{Group: "Грудь", Exercise: "Жим лежа"},
		{Group: "Ноги", Exercise: "Выпады"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = repo.Seed(ctx, []models.CatalogEntry{{Group: "Спина", Exercise: "Тяга"}})
	require.NoError(t, err)
	assert.Zero(t, n, "непустой каталог не заполняется повторно")

	groups, err := repo.Groups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ноги", "Грудь"}, groups)

	inserted, err := repo.AddIfAbsent(ctx, "Legs", "Squat")
	require.NoError(t, err)
	assert.True(t, inserted)
	inserted, err = repo.AddIfAbsent(ctx, "Legs", "Squat")
	require.NoError(t, err)
	assert.False(t, inserted)

	legs, err := repo.Exercises(ctx, "Legs")
	require.NoError(t, err)
	assert.Equal(t, []string{"Squat"}, legs)

	entry, dropped, err := repo.DropLast(ctx)
	require.NoError(t, err)
	assert.True(t, dropped)
	assert.Equal(t, models.CatalogEntry{Group: "Legs", Exercise: "Squat"}, entry)

	legs, err = repo.Exercises(ctx, "Ноги")
	require.NoError(t, err)
	assert.Equal(t, []string{"Присед", "Выпады"}, legs)
}

func TestCatalogRepository_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(openTestDB(t))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := repo.AddIfAbsent(ctx, "Ноги", fmt.Sprintf("Упражнение %d", n%5))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	names, err := repo.Exercises(ctx, "Ноги")
	require.NoError(t, err)
	assert.Len(t, names, 5)
}

func TestCatalogRepository_DropLastEmpty(t *testing.T) {
	repo := NewCatalogRepository(openTestDB(t))
	_, dropped, err := repo.DropLast(context.Background())
	require.NoError(t, err)
	assert.False(t, dropped)
}
