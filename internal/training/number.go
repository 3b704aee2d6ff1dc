package training

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber разбирает вес или повторения из текста пользователя.
// Запятая считается десятичным разделителем. Всё, что не десятичное число, даёт 0.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	// ParseFloat понимает и шестнадцатеричную запись вроде 0x1p3
	if body := strings.TrimLeft(s, "+-"); len(body) > 1 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FormatNumber печатает число без лишних нулей: 70, 7.5
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
