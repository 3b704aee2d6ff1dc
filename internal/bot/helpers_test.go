package bot

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"short", "abc\n", 10, []string{"abc\n"}},
		{"by lines", "aaa\nbbb\nccc\n", 8, []string{"aaa\nbbb\n", "ccc\n"}},
		{"long line", "абвгдеж", 3, []string{"абв", "где", "ж"}},
		{"cyrillic counted by runes", "жжжж\nжж\n", 5, []string{"жжжж\n", "жж\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitMessage(tt.text, tt.limit)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("splitMessage(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
			}
			for _, chunk := range got {
				if utf8.RuneCountInString(chunk) > tt.limit {
					t.Errorf("chunk %q longer than %d", chunk, tt.limit)
				}
			}
		})
	}
}

func TestButtonRows(t *testing.T) {
	rows := buttonRows(numberButtons, 6)
	if len(rows) != 5 {
		t.Fatalf("rows = %d, want 5", len(rows))
	}
	if rows[1][1].Text != "7.5" {
		t.Errorf("rows[1][1] = %q, want 7.5", rows[1][1].Text)
	}

	if rows := buttonRows([]string{"a", "b", "c"}, 2); len(rows) != 2 || len(rows[1]) != 1 {
		t.Errorf("odd list: %v", rows)
	}
	if rows := buttonRows(nil, 2); rows != nil {
		t.Errorf("empty list: %v", rows)
	}
}
