package engine

// Keyboard какую клавиатуру показать под сообщением
type Keyboard int

const (
	// KeyboardKeep оставляет текущую клавиатуру
	KeyboardKeep Keyboard = iota
	KeyboardHide
	KeyboardGroups
	KeyboardExercises
	KeyboardNumbers
	KeyboardContinue
)

func (k Keyboard) String() string {
	switch k {
	case KeyboardHide:
		return "hide"
	case KeyboardGroups:
		return "groups"
	case KeyboardExercises:
		return "exercises"
	case KeyboardNumbers:
		return "numbers"
	case KeyboardContinue:
		return "continue"
	default:
		return "keep"
	}
}

// Message исходящее сообщение
type Message struct {
	Text     string
	Keyboard Keyboard
	// Group группа, упражнения которой показать на KeyboardExercises
	Group string
	// Pin закрепить сообщение после отправки
	Pin bool
}

// Reply ответ на один входящий текст.
// Unpin выполняется до отправки сообщений и не должен ломать ответ при ошибке.
type Reply struct {
	Messages []Message
	Unpin    bool
}

func say(text string, kb Keyboard) Reply {
	return Reply{Messages: []Message{{Text: text, Keyboard: kb}}}
}

// Тексты и кнопки диалога
const (
	TextStartHint     = "Начать тренировку — /training"
	TextChooseGroup   = "💪Выбери группу мышц"
	TextChooseEx      = "📋Выбери упражнение или впиши новое"
	TextEnterWeight   = "🏋🏻‍♂️Введи вес"
	TextEnterReps     = "🔢 Введи количество повторений"
	TextContinue      = "Продолжаем?"
	TextFinished      = "✅Запись подходов завершена\n\nПродолжить тренировку — /training"
	TextStatDropped   = "✖️Последний подход удален"
	TextNothingToDrop = "Нечего удалять: журнал пуст"
	TextExDropped     = "✖️Удалено последнее упражнение из списка"
	TextCatalogEmpty  = "Нечего удалять: список упражнений пуст"
	TextLogEmpty      = "Журнал пуст. Начать тренировку — /training"
	TextLogHeader     = "Вот история тренировок"

	ButtonYes = "💪Да"
	ButtonNo  = "🙅🏻‍♂️Нет, хватит"
)
