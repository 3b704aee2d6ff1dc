package bot

import (
	"context"

	"liftlog/internal/engine"
	"liftlog/internal/repository"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// API часть Telegram клиента, которой пользуется бот
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot представляет Telegram бота
type Bot struct {
	api      API
	engine   *engine.Engine
	catalog  repository.ExerciseCatalog
	cardPath string
	workers  int
}

// Options параметры бота
type Options struct {
	CardPath string
	Workers  int
}

// New создаёт новый экземпляр бота
func New(api API, eng *engine.Engine, catalog repository.ExerciseCatalog, opts Options) *Bot {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Bot{
		api:      api,
		engine:   eng,
		catalog:  catalog,
		cardPath: opts.CardPath,
		workers:  opts.Workers,
	}
}

// Run обрабатывает обновления, пока канал открыт и ctx не отменён.
// Сообщения разных чатов обрабатываются параллельно, не больше workers одновременно.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	var g errgroup.Group
	g.SetLimit(b.workers)

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case update, ok := <-updates:
			if !ok {
				break loop
			}
			g.Go(func() error {
				b.handleUpdate(ctx, update)
				return nil
			})
		}
	}

	return g.Wait()
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	if message == nil || message.Chat == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Int64("chat_id", message.Chat.ID).Interface("panic", r).Msg("паника при обработке сообщения")
		}
	}()

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}
	if message.Text == "" {
		return
	}
	b.handleMessage(ctx, message)
}
