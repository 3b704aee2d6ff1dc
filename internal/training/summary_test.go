package training

import (
	"testing"
	"time"

	"liftlog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := models.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func set(date, exercise string, run int, weight, reps float64) models.SetRecord {
	return models.SetRecord{ChatID: 7, Date: day(date), Group: "Ноги", Exercise: exercise, Run: run, Weight: weight, Reps: reps}
}

func TestLastSession(t *testing.T) {
	today := time.Date(2024, 3, 14, 18, 30, 0, 0, time.Local)

	t.Run("no records", func(t *testing.T) {
		_, _, ok := LastSession(nil, "Присед", today)
		assert.False(t, ok)
	})

	t.Run("other exercise only", func(t *testing.T) {
		records := []models.SetRecord{set("2024-03-13", "Жим", 1, 60, 8)}
		_, _, ok := LastSession(records, "Присед", today)
		assert.False(t, ok)
	})

	t.Run("yesterday", func(t *testing.T) {
		records := []models.SetRecord{
			set("2024-03-10", "Присед", 1, 60, 5),
			set("2024-03-13", "Присед", 1, 80, 5),
			set("2024-03-13", "Жим", 1, 50, 10),
			set("2024-03-13", "Присед", 2, 90, 3),
		}
		d, sets, ok := LastSession(records, "Присед", today)
		require.True(t, ok)
		assert.Equal(t, day("2024-03-13"), d)
		require.Len(t, sets, 2)
		assert.Equal(t, 80.0, sets[0].Weight)
		assert.Equal(t, 90.0, sets[1].Weight)
	})

	t.Run("today skipped in favour of earlier day", func(t *testing.T) {
		records := []models.SetRecord{
			set("2024-03-07", "Присед", 1, 70, 5),
			set("2024-03-14", "Присед", 1, 100, 5),
		}
		d, sets, ok := LastSession(records, "Присед", today)
		require.True(t, ok)
		assert.Equal(t, day("2024-03-07"), d)
		require.Len(t, sets, 1)
		assert.Equal(t, 70.0, sets[0].Weight)
	})

	t.Run("only today", func(t *testing.T) {
		records := []models.SetRecord{set("2024-03-14", "Присед", 1, 100, 5)}
		_, _, ok := LastSession(records, "Присед", today)
		assert.False(t, ok)
	})

	t.Run("unsorted log", func(t *testing.T) {
		records := []models.SetRecord{
			set("2024-03-12", "Присед", 1, 85, 5),
			set("2024-03-01", "Присед", 1, 40, 5),
		}
		d, _, ok := LastSession(records, "Присед", today)
		require.True(t, ok)
		assert.Equal(t, day("2024-03-12"), d)
	})
}

func TestFormatLastSession(t *testing.T) {
	sets := []models.SetRecord{
		set("2024-03-13", "Присед", 1, 80, 5),
		set("2024-03-13", "Присед", 2, 82.5, 4),
	}
	got := FormatLastSession(day("2024-03-13"), sets)
	assert.Equal(t, "Подходы за 13.03 (ср):\n\n80 x 5\n82.5 x 4\n", got)
}

func TestSetLines(t *testing.T) {
	assert.Equal(t, "Подход 1: 70.5x", SetOpening(1, 70.5))
	assert.Equal(t, "5\n", SetClosing(5))
	assert.Equal(t, "Подход 2: 100x5\n", SetOpening(2, 100)+SetClosing(5))
}

func TestFormatLog(t *testing.T) {
	assert.Empty(t, FormatLog(nil))

	records := []models.SetRecord{
		set("2024-03-13", "Присед", 1, 80, 5),
		set("2024-03-13", "Присед", 2, 82.5, 4),
		set("2024-03-14", "Выпады", 1, 20, 12),
	}
	want := "13.03.2024 (ср)\n" +
		"Ноги / Присед, подход 1: 80 x 5\n" +
		"Ноги / Присед, подход 2: 82.5 x 4\n" +
		"\n14.03.2024 (чт)\n" +
		"Ноги / Выпады, подход 1: 20 x 12\n"
	assert.Equal(t, want, FormatLog(records))
}
