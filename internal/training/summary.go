package training

import (
	"fmt"
	"strings"
	"time"

	"liftlog/internal/models"
)

var weekdaysRu = [...]string{"вс", "пн", "вт", "ср", "чт", "пт", "сб"}

// WeekdayRu короткое название дня недели
func WeekdayRu(d time.Weekday) string {
	return weekdaysRu[d]
}

// LastSession находит подходы упражнения за последний день тренировки.
// Если упражнение уже делали сегодня, берётся последний день до сегодняшнего.
// Записи возвращаются в порядке журнала.
func LastSession(records []models.SetRecord, exercise string, today time.Time) (time.Time, []models.SetRecord, bool) {
	today = models.Day(today)

	var latest, latestBefore time.Time
	for _, r := range records {
		if r.Exercise != exercise {
			continue
		}
		if r.Date.After(latest) {
			latest = r.Date
		}
		if r.Date.Before(today) && r.Date.After(latestBefore) {
			latestBefore = r.Date
		}
	}

	day := latest
	if day.Equal(today) {
		day = latestBefore
	}
	if day.IsZero() {
		return time.Time{}, nil, false
	}

	var sets []models.SetRecord
	for _, r := range records {
		if r.Exercise == exercise && r.Date.Equal(day) {
			sets = append(sets, r)
		}
	}
	return day, sets, true
}

// FormatLastSession текст сообщения с подходами за прошлую тренировку
func FormatLastSession(day time.Time, sets []models.SetRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Подходы за %s (%s):\n\n", day.Format("02.01"), WeekdayRu(day.Weekday()))
	for _, s := range sets {
		fmt.Fprintf(&sb, "%s x %s\n", FormatNumber(s.Weight), FormatNumber(s.Reps))
	}
	return sb.String()
}

// SetOpening начало строки подхода после ввода веса
func SetOpening(run int, weight float64) string {
	return fmt.Sprintf("Подход %d: %sx", run, FormatNumber(weight))
}

// SetClosing окончание строки подхода после ввода повторений
func SetClosing(reps float64) string {
	return FormatNumber(reps) + "\n"
}

// FormatLog журнал чата для /stats: подходы сгруппированы по дням в порядке записи
func FormatLog(records []models.SetRecord) string {
	if len(records) == 0 {
		return ""
	}
	var sb strings.Builder
	var day time.Time
	for i, r := range records {
		if i == 0 || !r.Date.Equal(day) {
			if i > 0 {
				sb.WriteByte('\n')
			}
			day = r.Date
			fmt.Fprintf(&sb, "%s (%s)\n", day.Format("02.01.2006"), WeekdayRu(day.Weekday()))
		}
		fmt.Fprintf(&sb, "%s / %s, подход %d: %s x %s\n",
			r.Group, r.Exercise, r.Run, FormatNumber(r.Weight), FormatNumber(r.Reps))
	}
	return sb.String()
}
