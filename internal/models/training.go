package models

import "time"

// DateLayout формат даты в журнале подходов
const DateLayout = "2006-01-02"

// Step шаг диалога записи подходов
type Step int

const (
	StepIdle Step = iota
	StepAwaitGroup
	StepAwaitExercise
	StepAwaitWeight
	StepAwaitReps
	StepAwaitContinue
)

func (s Step) String() string {
	switch s {
	case StepAwaitGroup:
		return "await_group"
	case StepAwaitExercise:
		return "await_exercise"
	case StepAwaitWeight:
		return "await_weight"
	case StepAwaitReps:
		return "await_reps"
	case StepAwaitContinue:
		return "await_continue"
	default:
		return "idle"
	}
}

// SetRecord один записанный подход
type SetRecord struct {
	ChatID   int64     `json:"chat_id"`
	Date     time.Time `json:"date"`
	Group    string    `json:"group"`
	Exercise string    `json:"exercise"`
	Run      int       `json:"run"`
	Weight   float64   `json:"weight"`
	Reps     float64   `json:"reps"`
}

// CatalogEntry упражнение в общем каталоге
type CatalogEntry struct {
	Group    string `json:"group"`
	Exercise string `json:"exercise"`
}

// Session незавершённая запись подходов одного чата.
// Хранится по значению: движок меняет копию и сохраняет её только после успешной записи.
type Session struct {
	ChatID        int64
	Step          Step
	Date          time.Time
	Group         string
	Exercise      string
	Run           int
	PendingWeight float64
	Summary       string
	UpdatedAt     time.Time
}

// Day возвращает календарную дату t (в её часовом поясе) как полночь UTC
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay разбирает дату формата YYYY-MM-DD
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
