package bot

import (
	"context"
	"errors"
	"fmt"
	"os"

	"liftlog/internal/engine"
	"liftlog/internal/export"
	"liftlog/internal/models"
	"liftlog/internal/training"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

const (
	textUnknownCommand = "Пока я такого не умею =("
	textTryAgain       = "⚠️ Не получилось, попробуй ещё раз"
	textNoCard         = "Карточка пока не загружена"
)

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	command := message.Command()
	log.Debug().Int64("chat_id", chatID).Str("command", command).Msg("команда")

	var err error
	switch command {
	case "start":
		err = b.handleStart(ctx, chatID)
	case "training":
		b.deliver(ctx, chatID, b.engine.Training(ctx, chatID))
	case "stats":
		err = b.handleStats(ctx, chatID)
	case "send":
		err = b.handleExport(ctx, chatID, export.CSV, export.CSVName)
	case "excel":
		err = b.handleExport(ctx, chatID, export.XLSX, export.XLSXName)
	case "card":
		err = b.handleCard(ctx, chatID)
	case "drop_stat":
		err = b.replyThenStart(ctx, chatID, b.engine.DropStat)
	case "drop_ex":
		err = b.replyThenStart(ctx, chatID, b.engine.DropExercise)
	default:
		b.sendMessage(chatID, textUnknownCommand)
	}

	if err != nil {
		b.sendError(chatID, textTryAgain, fmt.Errorf("/%s: %w", command, err))
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	reply, err := b.engine.Handle(ctx, chatID, message.Text)
	if err != nil {
		b.sendError(chatID, textTryAgain, err)
		return
	}
	log.Debug().Int64("chat_id", chatID).Stringer("step", b.engine.Step(chatID)).Msg("шаг диалога")
	b.deliver(ctx, chatID, reply)
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) error {
	reply, err := b.engine.Start(ctx, chatID)
	if err != nil {
		return err
	}
	b.deliver(ctx, chatID, reply)
	return nil
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) error {
	records, err := b.engine.Log(ctx, chatID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		b.sendMessage(chatID, engine.TextLogEmpty)
		return nil
	}

	b.sendMessage(chatID, engine.TextLogHeader)
	for _, chunk := range splitMessage(training.FormatLog(records), maxMessageLen) {
		if b.sendMessage(chatID, chunk) != nil {
			break
		}
	}
	return nil
}

// handleExport отправляет журнал файлом и возвращает в начало
func (b *Bot) handleExport(
	ctx context.Context,
	chatID int64,
	encode func([]models.SetRecord) ([]byte, error),
	name func(int64) string,
) error {
	records, err := b.engine.Log(ctx, chatID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		b.sendMessage(chatID, engine.TextLogEmpty)
		return nil
	}

	data, err := encode(records)
	if err != nil {
		return err
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name(chatID), Bytes: data})
	if _, err := b.api.Send(doc); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("файл журнала не отправлен")
	}
	return b.handleStart(ctx, chatID)
}

func (b *Bot) handleCard(ctx context.Context, chatID int64) error {
	if _, err := os.Stat(b.cardPath); errors.Is(err, os.ErrNotExist) {
		b.sendMessage(chatID, textNoCard)
		return b.handleStart(ctx, chatID)
	} else if err != nil {
		return err
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(b.cardPath))
	if _, err := b.api.Send(photo); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Str("path", b.cardPath).Msg("карточка не отправлена")
	}
	return b.handleStart(ctx, chatID)
}

func (b *Bot) replyThenStart(ctx context.Context, chatID int64, op func(context.Context, int64) (engine.Reply, error)) error {
	reply, err := op(ctx, chatID)
	if err != nil {
		return err
	}
	b.deliver(ctx, chatID, reply)
	return b.handleStart(ctx, chatID)
}
