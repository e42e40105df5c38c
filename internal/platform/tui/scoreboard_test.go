package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/invaders/internal/storage"
)

func TestScoreRows(t *testing.T) {
	when := time.Date(2024, 5, 6, 7, 8, 0, 0, time.UTC)
	rows := scoreRows([]storage.ScoreEntry{
		{Score: 12300, Wave: 3, Outcome: "won", CreatedAt: when},
		{Score: 400, CreatedAt: when},
	})

	if len(rows) != 2 {
		t.Fatalf("scoreRows() returned %d rows, expected 2", len(rows))
	}

	tests := []struct {
		row, col int
		expected string
	}{
		{0, 0, "#1"},
		{0, 1, "12,300"},
		{0, 2, "3"},
		{0, 3, "won"},
		{0, 4, "May 06 07:08"},
		{1, 0, "#2"},
		{1, 1, "400"},
		{1, 2, "-"},
		{1, 3, "-"},
	}
	for _, tt := range tests {
		if got := rows[tt.row][tt.col]; got != tt.expected {
			t.Errorf("rows[%d][%d] = %q, expected %q", tt.row, tt.col, got, tt.expected)
		}
	}
}

func TestScoreboardModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	for _, e := range []storage.ScoreEntry{
		{GameID: "invaders", Score: 5000, Wave: 3, Outcome: "won"},
		{GameID: "invaders", Score: 1200, Wave: 1, Outcome: "lost"},
	} {
		if _, err := store.SaveResult(e); err != nil {
			t.Fatalf("SaveResult() error: %v", err)
		}
	}

	m := NewScoreboardModel(store, "invaders", 80, 24)
	if len(m.scores) != 2 {
		t.Fatalf("loaded %d scores, expected 2", len(m.scores))
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES", "Games: 2", "Wins: 1", "5,000"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(runeKey('X'))
	cleared := next.(ScoreboardModel)
	if len(cleared.scores) != 0 {
		t.Errorf("scores after clear = %d, expected 0", len(cleared.scores))
	}
	if !strings.Contains(cleared.View(), "No scores recorded yet") {
		t.Error("empty scoreboard should say so")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "invaders", 80, 24)

	if view := m.View(); !strings.Contains(view, "No games played") {
		t.Errorf("View() without a store:\n%s", view)
	}
}
