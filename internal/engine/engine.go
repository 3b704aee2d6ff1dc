package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"liftlog/internal/models"
	"liftlog/internal/repository"
	"liftlog/internal/training"

	"github.com/rs/zerolog/log"
)

// Sessions хранилище незавершённых записей по чатам
type Sessions interface {
	Get(chatID int64) models.Session
	Save(sess models.Session)
	Reset(chatID int64)
}

// Engine ведёт диалог записи подходов.
//
// Сессия чата читается копией и сохраняется только после того, как вся запись
// в хранилище для шага прошла. Ошибка хранилища оставляет чат на том же шаге.
// Два сообщения одного чата, обработанные одновременно, могут затереть
// изменения друг друга: порядок внутри чата обеспечивает темп набора текста.
type Engine struct {
	stats    repository.StatsRepository
	catalog  repository.ExerciseCatalog
	sessions Sessions

	now func() time.Time
	loc *time.Location
}

// Option настройка движка
type Option func(*Engine)

// WithClock задаёт источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation задаёт часовой пояс для календарной даты подхода
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

// New создаёт движок диалога
func New(stats repository.StatsRepository, catalog repository.ExerciseCatalog, sessions Sessions, opts ...Option) *Engine {
	e := &Engine{
		stats:    stats,
		catalog:  catalog,
		sessions: sessions,
		now:      time.Now,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) today() time.Time {
	return models.Day(e.now().In(e.loc))
}

// Step текущий шаг диалога чата
func (e *Engine) Step(chatID int64) models.Step {
	return e.sessions.Get(chatID).Step
}

// Start сбрасывает сессию чата и проверяет, что журнал читается
func (e *Engine) Start(ctx context.Context, chatID int64) (Reply, error) {
	e.sessions.Reset(chatID)
	if err := e.stats.Ensure(ctx, chatID); err != nil {
		return Reply{}, err
	}
	return say(TextStartHint, KeyboardHide), nil
}

// Training начинает запись подходов с выбора группы мышц
func (e *Engine) Training(_ context.Context, chatID int64) Reply {
	e.sessions.Save(models.Session{
		ChatID:    chatID,
		Step:      models.StepAwaitGroup,
		Date:      e.today(),
		UpdatedAt: e.now(),
	})
	return say(TextChooseGroup, KeyboardGroups)
}

// Handle обрабатывает обычный текст в зависимости от шага диалога
func (e *Engine) Handle(ctx context.Context, chatID int64, text string) (Reply, error) {
	sess := e.sessions.Get(chatID)
	text = strings.TrimSpace(text)

	var (
		reply Reply
		err   error
	)
	switch sess.Step {
	case models.StepAwaitGroup:
		if text == "" {
			return say(TextChooseGroup, KeyboardGroups), nil
		}
		reply = e.chooseGroup(&sess, text)
	case models.StepAwaitExercise:
		if text == "" {
			return Reply{Messages: []Message{{Text: TextChooseEx, Keyboard: KeyboardExercises, Group: sess.Group}}}, nil
		}
		reply, err = e.chooseExercise(ctx, &sess, text)
	case models.StepAwaitWeight:
		reply = e.enterWeight(&sess, text)
	case models.StepAwaitReps:
		reply, err = e.enterReps(ctx, &sess, text)
	case models.StepAwaitContinue:
		if text != ButtonYes {
			e.sessions.Reset(chatID)
			return Reply{Unpin: true, Messages: []Message{{Text: TextFinished, Keyboard: KeyboardHide}}}, nil
		}
		sess.Step = models.StepAwaitWeight
		reply = say(TextEnterWeight, KeyboardNumbers)
	default:
		return say(TextStartHint, KeyboardHide), nil
	}
	if err != nil {
		return Reply{}, err
	}

	sess.UpdatedAt = e.now()
	e.sessions.Save(sess)
	return reply, nil
}

func (e *Engine) chooseGroup(sess *models.Session, group string) Reply {
	sess.Group = group
	sess.Date = e.today()
	sess.Step = models.StepAwaitExercise
	return Reply{Messages: []Message{{Text: TextChooseEx, Keyboard: KeyboardExercises, Group: group}}}
}

func (e *Engine) chooseExercise(ctx context.Context, sess *models.Session, exercise string) (Reply, error) {
	var reply Reply

	records, err := e.stats.Load(ctx, sess.ChatID)
	if err != nil {
		return Reply{}, err
	}
	if day, sets, ok := training.LastSession(records, exercise, e.today()); ok {
		reply.Messages = append(reply.Messages, Message{
			Text: training.FormatLastSession(day, sets),
			Pin:  true,
		})
	}

	inserted, err := e.catalog.AddIfAbsent(ctx, sess.Group, exercise)
	if err != nil {
		return Reply{}, err
	}
	if inserted {
		log.Info().Int64("chat_id", sess.ChatID).Str("group", sess.Group).Str("exercise", exercise).
			Msg("новое упражнение в каталоге")
	}

	sess.Exercise = exercise
	sess.Run = 0
	sess.PendingWeight = 0
	sess.Summary = ""
	sess.Step = models.StepAwaitWeight

	reply.Messages = append(reply.Messages, Message{Text: TextEnterWeight, Keyboard: KeyboardNumbers})
	return reply, nil
}

func (e *Engine) enterWeight(sess *models.Session, text string) Reply {
	weight := training.ParseNumber(text)

	sess.Run++
	sess.PendingWeight = weight
	sess.Summary += training.SetOpening(sess.Run, weight)
	sess.Step = models.StepAwaitReps
	return say(TextEnterReps, KeyboardNumbers)
}

func (e *Engine) enterReps(ctx context.Context, sess *models.Session, text string) (Reply, error) {
	reps := training.ParseNumber(text)

	rec := models.SetRecord{
		ChatID:   sess.ChatID,
		Date:     sess.Date,
		Group:    sess.Group,
		Exercise: sess.Exercise,
		Run:      sess.Run,
		Weight:   sess.PendingWeight,
		Reps:     reps,
	}
	if err := e.stats.Append(ctx, sess.ChatID, rec); err != nil {
		return Reply{}, err
	}

	sess.Summary += training.SetClosing(reps)
	sess.Step = models.StepAwaitContinue
	return say(sess.Summary+"\n"+TextContinue, KeyboardContinue), nil
}

// Log журнал подходов чата
func (e *Engine) Log(ctx context.Context, chatID int64) ([]models.SetRecord, error) {
	return e.stats.Load(ctx, chatID)
}

// DropStat удаляет последний записанный подход чата
func (e *Engine) DropStat(ctx context.Context, chatID int64) (Reply, error) {
	dropped, err := e.stats.DropLast(ctx, chatID)
	if err != nil {
		return Reply{}, err
	}
	if !dropped {
		return say(TextNothingToDrop, KeyboardKeep), nil
	}
	log.Info().Int64("chat_id", chatID).Msg("последний подход удалён")
	return say(TextStatDropped, KeyboardKeep), nil
}

// DropExercise удаляет последнее упражнение из общего каталога
func (e *Engine) DropExercise(ctx context.Context, chatID int64) (Reply, error) {
	entry, dropped, err := e.catalog.DropLast(ctx)
	if err != nil {
		return Reply{}, err
	}
	if !dropped {
		return say(TextCatalogEmpty, KeyboardKeep), nil
	}
	log.Info().Int64("chat_id", chatID).Str("group", entry.Group).Str("exercise", entry.Exercise).
		Msg("упражнение удалено из каталога")
	return say(fmt.Sprintf("%s: %s", TextExDropped, entry.Exercise), KeyboardKeep), nil
}
