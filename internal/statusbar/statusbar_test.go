package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/seek/internal/theme"
	"github.com/bethropolis/seek/internal/types"
	"github.com/gdamore/tcell/v2"
)

func newTestBar() (*StatusBar, *time.Time) {
	sb := New(theme.DevComfortDark, time.Second)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sb.now = func() time.Time { return clock }
	return sb, &clock
}

func row(t *testing.T, s tcell.SimulationScreen, y int) string {
	t.Helper()
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestContentDefault(t *testing.T) {
	sb, _ := newTestBar()
	left, right, style := sb.Content()
	if left != "[No Name]" || style != theme.StatusBar {
		t.Errorf("Content() left = %q style = %q", left, style)
	}
	if right != "[regex]  Ln 1, Col 1" {
		t.Errorf("Content() right = %q", right)
	}

	sb.SetFileInfo("/tmp/notes.txt", true)
	sb.SetCursorInfo(types.Position{Line: 4, Col: 9})
	sb.SetLiteral(true)
	left, right, style = sb.Content()
	if left != "/tmp/notes.txt [Modified]" || style != theme.StatusModified {
		t.Errorf("modified Content() = %q, %q", left, style)
	}
	if right != "[literal]  Ln 5, Col 10" {
		t.Errorf("Content() right = %q", right)
	}
}

func TestSearchIndicator(t *testing.T) {
	tests := []struct {
		info SearchInfo
		want string
	}{
		{SearchInfo{Pattern: "X", Index: 1, Count: 3}, "[regex] 2/3"},
		{SearchInfo{Pattern: "X", Literal: true, Index: 0, Count: 1}, "[literal] 1/1"},
		{SearchInfo{Pattern: "Z", Index: -1, Count: 0}, "[regex] no matches"},
		{SearchInfo{Pattern: "X", Index: -1, Count: 4}, "[regex] -/4"},
	}
	sb, _ := newTestBar()
	for _, tt := range tests {
		sb.SetSearchInfo(tt.info)
		_, right, _ := sb.Content()
		if !strings.HasPrefix(right, tt.want+"  ") {
			t.Errorf("right = %q, want prefix %q", right, tt.want)
		}
	}
}

func TestTemporaryMessageExpires(t *testing.T) {
	sb, clock := newTestBar()
	sb.SetTemporaryMessage("Saved %s", "a.txt")
	if left, _, style := sb.Content(); left != "Saved a.txt" || style != theme.StatusMessage {
		t.Errorf("Content() = %q, %q", left, style)
	}
	*clock = clock.Add(2 * time.Second)
	if left, _, _ := sb.Content(); left != "[No Name]" {
		t.Errorf("expired message still shown: %q", left)
	}

	sb.SetError("Invalid pattern")
	if _, _, style := sb.Content(); style != theme.StatusError {
		t.Errorf("error style = %q", style)
	}
	sb.ResetTemporaryMessage()
	if left, _, _ := sb.Content(); left != "[No Name]" {
		t.Errorf("reset message still shown: %q", left)
	}
}

func TestPrompt(t *testing.T) {
	sb, _ := newTestBar()
	sb.SetTemporaryMessage("hidden by the prompt")
	sb.SetPrompt("Find: ", "日本")
	left, right, style := sb.Content()
	if left != "Find: 日本" || right != "" || style != theme.Prompt {
		t.Errorf("Content() = %q, %q, %q", left, right, style)
	}
	if col, ok := sb.PromptCursor(); !ok || col != 10 {
		t.Errorf("PromptCursor() = %d, %v; want 10", col, ok)
	}
	sb.ClearPrompt()
	if _, ok := sb.PromptCursor(); ok {
		t.Error("PromptCursor reported a cleared prompt")
	}
}

func TestDraw(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(40, 3)

	sb, _ := newTestBar()
	sb.SetFileInfo("a.txt", false)
	sb.SetSearchInfo(SearchInfo{Pattern: "x", Index: 0, Count: 2})
	sb.Draw(s, 40, 3)

	got := row(t, s, 2)
	if !strings.HasPrefix(got, "a.txt ") {
		t.Errorf("left side = %q", got)
	}
	if !strings.HasSuffix(got, "[regex] 1/2  Ln 1, Col 1") {
		t.Errorf("right side = %q", got)
	}
	_, _, style, _ := s.GetContent(0, 2)
	if style != theme.DevComfortDark.GetStyle(theme.StatusBar) {
		t.Errorf("status bar drawn with %v", style)
	}

	// too narrow for the right side: only the left is drawn
	s.SetSize(10, 1)
	sb.Draw(s, 10, 1)
	if got := row(t, s, 0); got != "a.txt     " {
		t.Errorf("narrow bar = %q", got)
	}
}
