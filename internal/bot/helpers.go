package bot

import (
	"context"
	"strings"
	"unicode/utf8"

	"liftlog/internal/engine"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// maxMessageLen лимит Telegram на длину текста сообщения
const maxMessageLen = 4096

// sendError sends error message to user and logs it
func (b *Bot) sendError(chatID int64, userMessage string, err error) {
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("ошибка обработки сообщения")
	}
	msg := tgbotapi.NewMessage(chatID, userMessage)
	if _, sendErr := b.api.Send(msg); sendErr != nil {
		log.Error().Err(sendErr).Int64("chat_id", chatID).Msg("сообщение об ошибке не отправлено")
	}
}

// sendMessage sends message to user with error logging
func (b *Bot) sendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("сообщение не отправлено")
	}
	return err
}

// deliver отправляет ответ движка: снимает закреп, шлёт сообщения, закрепляет нужные.
// Ошибки закрепа и открепа не прерывают ответ.
func (b *Bot) deliver(ctx context.Context, chatID int64, reply engine.Reply) {
	if reply.Unpin {
		if _, err := b.api.Request(tgbotapi.UnpinChatMessageConfig{ChatID: chatID}); err != nil {
			log.Warn().Err(err).Int64("chat_id", chatID).Msg("не удалось открепить сообщение")
		}
	}

	for _, m := range reply.Messages {
		msg := tgbotapi.NewMessage(chatID, m.Text)
		markup, err := b.markup(ctx, m)
		if err != nil {
			log.Warn().Err(err).Int64("chat_id", chatID).Stringer("keyboard", m.Keyboard).Msg("клавиатура не собрана")
		} else if markup != nil {
			msg.ReplyMarkup = markup
		}

		sent, err := b.api.Send(msg)
		if err != nil {
			log.Error().Err(err).Int64("chat_id", chatID).Msg("сообщение не отправлено")
			return
		}
		if !m.Pin {
			continue
		}
		pin := tgbotapi.PinChatMessageConfig{ChatID: chatID, MessageID: sent.MessageID, DisableNotification: true}
		if _, err := b.api.Request(pin); err != nil {
			log.Warn().Err(err).Int64("chat_id", chatID).Msg("не удалось закрепить сообщение")
		}
	}
}

// splitMessage режет текст по строкам на куски не длиннее limit символов
func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		n := utf8.RuneCountInString(line)
		if curLen+n > limit {
			flush()
		}
		for n > limit {
			runes := []rune(line)
			chunks = append(chunks, string(runes[:limit]))
			line = string(runes[limit:])
			n -= limit
		}
		cur.WriteString(line)
		curLen += n
	}
	flush()
	return chunks
}
