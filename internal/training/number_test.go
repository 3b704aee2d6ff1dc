package training

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"integer", "70", 70},
		{"point decimal", "7.5", 7.5},
		{"comma decimal", "7,5", 7.5},
		{"comma with spaces", " 70,5 ", 70.5},
		{"zero", "0", 0},
		{"word", "много", 0},
		{"empty", "", 0},
		{"two separators", "1,2,3", 0},
		{"emoji", "💪Да", 0},
		{"nan", "NaN", 0},
		{"inf", "inf", 0},
		{"hex float", "0x1p3", 0},
		{"hex float upper", "0X1P-2", 0},
		{"hex float integer mantissa", "0x10p0", 0},
		{"signed hex float", "-0x1p3", 0},
		{"leading zero decimal", "007,5", 7.5},
		{"negative", "-2.5", -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseNumber(tt.input); got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNumber_SeparatorsAgree(t *testing.T) {
	for _, s := range []string{"7.5", "100.25", "0.5", "12"} {
		comma := ParseNumber(replaceDot(s))
		if comma != ParseNumber(s) {
			t.Errorf("ParseNumber(%q) = %v, ParseNumber(%q) = %v", s, ParseNumber(s), replaceDot(s), comma)
		}
	}
}

func replaceDot(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r == '.' {
			out[i] = ','
		}
	}
	return string(out)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{70, "70"},
		{70.5, "70.5"},
		{7.5, "7.5"},
		{0, "0"},
		{100.25, "100.25"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
