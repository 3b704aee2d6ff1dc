package bot

import (
	"context"

	"liftlog/internal/engine"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var numberButtons = []string{
	"0", "1", "2", "3", "4",
	"5", "6", "7.5", "8", "9",
	"10", "11", "12", "15", "18",
	"20", "23", "25", "30", "35",
	"40", "45", "50", "55", "60",
	"65", "70", "75", "80", "85",
}

// markup клавиатура для сообщения; nil оставляет текущую
func (b *Bot) markup(ctx context.Context, m engine.Message) (any, error) {
	switch m.Keyboard {
	case engine.KeyboardHide:
		return tgbotapi.NewRemoveKeyboard(true), nil
	case engine.KeyboardGroups:
		groups, err := b.catalog.Groups(ctx)
		if err != nil {
			return nil, err
		}
		return listKeyboard(groups, 2), nil
	case engine.KeyboardExercises:
		names, err := b.catalog.Exercises(ctx, m.Group)
		if err != nil {
			return nil, err
		}
		return listKeyboard(names, 2), nil
	case engine.KeyboardNumbers:
		return listKeyboard(numberButtons, 6), nil
	case engine.KeyboardContinue:
		return tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(engine.ButtonYes),
				tgbotapi.NewKeyboardButton(engine.ButtonNo),
			),
		), nil
	}
	return nil, nil
}

// listKeyboard раскладывает кнопки по perRow в ряд.
// Пустой список убирает клавиатуру: новое упражнение вводят текстом.
func listKeyboard(labels []string, perRow int) any {
	rows := buttonRows(labels, perRow)
	if len(rows) == 0 {
		return tgbotapi.NewRemoveKeyboard(true)
	}
	return tgbotapi.NewReplyKeyboard(rows...)
}

func buttonRows(labels []string, perRow int) [][]tgbotapi.KeyboardButton {
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(labels); i += perRow {
		end := min(i+perRow, len(labels))
		row := make([]tgbotapi.KeyboardButton, 0, end-i)
		for _, label := range labels[i:end] {
			row = append(row, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, row)
	}
	return rows
}
