package app

import (
	"errors"
	"os"
	"path/filepath"
	"regexp/syntax"
	"testing"
	"time"

	"github.com/bethropolis/seek/internal/core/find"
	"github.com/bethropolis/seek/internal/document"
	"github.com/bethropolis/seek/internal/event"
	"github.com/spf13/afero"
)

func newTestSession(t *testing.T, text string) (*Session, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/doc.txt", []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewSession(SessionConfig{Fs: fsys})
	if err := s.Open("/doc.txt"); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	return s, fsys
}

func wantSpan(t *testing.T, label string, got find.Span, ok bool, want find.Span) {
	t.Helper()
	if !ok || got != want {
		t.Errorf("%s = %v, %v; want %v", label, got, ok, want)
	}
}

func TestSessionSearchAndCycle(t *testing.T) {
	s, _ := newTestSession(t, "aXbXcX")

	n, err := s.Search("X")
	if err != nil || n != 3 {
		t.Fatalf("Search = %d, %v; want 3 matches", n, err)
	}
	span, ok := s.CurrentSpan()
	wantSpan(t, "CurrentSpan", span, ok, find.Span{Start: 1, End: 2})

	sel, _ := s.Editor().Selection()
	if sel != (find.Span{Start: 1, End: 2}) || s.Editor().Caret() != 2 {
		t.Errorf("editor selection %v caret %d; want {1,2} caret 2", sel, s.Editor().Caret())
	}

	span, ok = s.Next()
	wantSpan(t, "Next", span, ok, find.Span{Start: 3, End: 4})
	span, ok = s.Next()
	wantSpan(t, "Next", span, ok, find.Span{Start: 5, End: 6})
	span, ok = s.Next()
	wantSpan(t, "Next (wrap)", span, ok, find.Span{Start: 1, End: 2})
	span, ok = s.Prev()
	wantSpan(t, "Prev (wrap)", span, ok, find.Span{Start: 5, End: 6})

	if s.Editor().SelectedText() != "X" || s.Editor().Caret() != 6 {
		t.Errorf("selection after Prev = %q caret %d", s.Editor().SelectedText(), s.Editor().Caret())
	}
}

func TestSessionNoMatches(t *testing.T) {
	s, _ := newTestSession(t, "abc")
	n, err := s.Search("z")
	if err != nil || n != 0 {
		t.Fatalf("Search = %d, %v", n, err)
	}
	if _, ok := s.CurrentSpan(); ok {
		t.Error("CurrentSpan present with no matches")
	}
	if _, ok := s.Next(); ok {
		t.Error("Next present with no matches")
	}
	if _, ok := s.Prev(); ok {
		t.Error("Prev present with no matches")
	}
	if s.Editor().HasSelection() {
		t.Error("a search without matches left a selection")
	}
}

func TestSessionInvalidPatternKeepsState(t *testing.T) {
	s, _ := newTestSession(t, "aXbXcX")
	if _, err := s.Search("X"); err != nil {
		t.Fatal(err)
	}
	s.Next()

	_, err := s.Search("(")
	var perr *find.PatternError
	if !errors.As(err, &perr) {
		t.Fatalf("Search(\"(\") error = %v, want *find.PatternError", err)
	}
	var serr *syntax.Error
	if !errors.As(err, &serr) {
		t.Errorf("PatternError does not unwrap to *syntax.Error: %v", err)
	}

	span, ok := s.CurrentSpan()
	wantSpan(t, "CurrentSpan after bad pattern", span, ok, find.Span{Start: 3, End: 4})
	sel, _ := s.Editor().Selection()
	if sel != (find.Span{Start: 3, End: 4}) {
		t.Errorf("selection changed to %v", sel)
	}
	span, ok = s.Next()
	wantSpan(t, "Next after bad pattern", span, ok, find.Span{Start: 5, End: 6})
}

func TestSessionZeroWidthPattern(t *testing.T) {
	s, _ := newTestSession(t, "ab")
	n, err := s.Search("")
	if err != nil || n != 3 {
		t.Fatalf("Search(\"\") = %d, %v; want 3", n, err)
	}
	want := []find.Span{{Start: 0, End: 0}, {Start: 1, End: 1}, {Start: 2, End: 2}}
	got := s.Navigator().Matches()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSessionEditInvalidatesMatches(t *testing.T) {
	s, _ := newTestSession(t, "aXbXcX")
	if _, err := s.Search("X"); err != nil {
		t.Fatal(err)
	}
	s.Editor().SetCaret(0)
	s.Editor().InsertRune('Z')

	if len(s.Navigator().Matches()) != 0 {
		t.Error("matches survived an edit")
	}
	if _, ok := s.CurrentSpan(); ok {
		t.Error("CurrentSpan present after an edit")
	}
	if !s.Modified() {
		t.Error("edit did not mark the document modified")
	}
	if n, _ := s.Search("X"); n != 3 {
		t.Errorf("search after edit = %d matches", n)
	}
	span, _ := s.CurrentSpan()
	if span != (find.Span{Start: 2, End: 3}) {
		t.Errorf("first match after edit = %v, want {2,3}", span)
	}
}

func TestSessionLiteralToggle(t *testing.T) {
	s, _ := newTestSession(t, "a.b a+b")
	if n, _ := s.Search("a.b"); n != 2 {
		t.Errorf("regex search = %d matches, want 2", n)
	}
	if !s.ToggleLiteral() {
		t.Fatal("ToggleLiteral did not enable literal mode")
	}
	if n, _ := s.Search("a.b"); n != 1 {
		t.Errorf("literal search = %d matches, want 1", n)
	}
	if n, err := s.Search("("); err != nil || n != 0 {
		t.Errorf("literal \"(\" = %d, %v; want 0, nil", n, err)
	}
	if s.ToggleLiteral() {
		t.Error("second toggle did not return to regex mode")
	}
}

func TestSessionOpenSaveRoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewSession(SessionConfig{Fs: fsys})

	if err := s.Open("/new.txt"); err != nil {
		t.Fatalf("Open(missing) error: %v", err)
	}
	if s.Text() != "" || s.Path() != "/new.txt" {
		t.Fatalf("missing file opened as %q bound to %q", s.Text(), s.Path())
	}

	text := "héllo\nwörld 😀\n"
	s.Editor().InsertText(text)
	if err := s.Save(""); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if s.Modified() {
		t.Error("document still modified after save")
	}

	other := NewSession(SessionConfig{Fs: fsys})
	if err := other.Open("/new.txt"); err != nil {
		t.Fatal(err)
	}
	if other.Text() != text {
		t.Errorf("round trip = %q, want %q", other.Text(), text)
	}
}

func TestSessionSaveWithoutPath(t *testing.T) {
	s := NewSession(SessionConfig{Fs: afero.NewMemMapFs()})
	s.Editor().InsertText("x")
	if err := s.Save(""); !errors.Is(err, document.ErrNoPath) {
		t.Errorf("Save(\"\") = %v, want ErrNoPath", err)
	}
}

func TestSessionSaveFailureIsReported(t *testing.T) {
	s := NewSession(SessionConfig{Fs: afero.NewReadOnlyFs(afero.NewMemMapFs())})
	s.Editor().InsertText("x")
	if err := s.Save("/out.txt"); !errors.Is(err, document.ErrWrite) {
		t.Fatalf("Save = %v, want ErrWrite", err)
	}
	if !s.Modified() {
		t.Error("failed save cleared the modified flag")
	}
}

func TestSessionOpenFailureKeepsDocument(t *testing.T) {
	s := NewSession(SessionConfig{})
	s.Editor().InsertText("unsaved work")
	if err := s.Open(t.TempDir()); !errors.Is(err, document.ErrRead) {
		t.Fatalf("Open(directory) = %v, want ErrRead", err)
	}
	if s.Text() != "unsaved work" {
		t.Errorf("failed open replaced the text with %q", s.Text())
	}
}

func TestSessionEvents(t *testing.T) {
	events := event.NewManager()
	var got []event.Type
	var search event.SearchData
	var match event.MatchData
	for _, typ := range []event.Type{event.TypeDocumentLoaded, event.TypeDocumentSaved, event.TypeSearchCompleted, event.TypeMatchSelected} {
		events.Subscribe(typ, func(e event.Event) bool {
			got = append(got, e.Type)
			switch d := e.Data.(type) {
			case event.SearchData:
				search = d
			case event.MatchData:
				match = d
			}
			return false
		})
	}

	fsys := afero.NewMemMapFs()
	_ = afero.WriteFile(fsys, "/e.txt", []byte("xx"), 0o644)
	s := NewSession(SessionConfig{Fs: fsys, Events: events})
	if err := s.Open("/e.txt"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Search("x"); err != nil {
		t.Fatal(err)
	}
	s.Next()
	if err := s.Save(""); err != nil {
		t.Fatal(err)
	}

	want := []event.Type{
		event.TypeDocumentLoaded,
		event.TypeSearchCompleted,
		event.TypeMatchSelected,
		event.TypeMatchSelected,
		event.TypeDocumentSaved,
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if search.Pattern != "x" || search.Count != 2 {
		t.Errorf("SearchData = %+v", search)
	}
	if match.Index != 1 || match.Count != 2 || match.Span != (find.Span{Start: 1, End: 2}) {
		t.Errorf("last MatchData = %+v", match)
	}
}

func TestSessionRequestQuit(t *testing.T) {
	s, _ := newTestSession(t, "text")
	if !s.RequestQuit() {
		t.Fatal("unmodified document refused to quit")
	}

	s.Editor().InsertRune('!')
	if s.RequestQuit() {
		t.Fatal("first quit with unsaved changes was allowed")
	}
	s.DisarmQuit()
	if s.RequestQuit() {
		t.Fatal("quit allowed after the request was disarmed")
	}
	if !s.RequestQuit() {
		t.Error("second quit in a row was refused")
	}
}

func TestSessionWatchReportsExternalChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.txt")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	events := event.NewManager()
	changed := make(chan string, 4)
	events.Subscribe(event.TypeDocumentChangedOnDisk, func(e event.Event) bool {
		changed <- e.Data.(event.DocumentData).Path
		return false
	})
	s := NewSession(SessionConfig{Events: events, Watch: true, WatchSettle: 20 * time.Millisecond})
	defer s.Close()
	if err := s.Open(path); err != nil {
		t.Fatal(err)
	}

	s.Editor().InsertText("own ")
	if err := s.Save(""); err != nil {
		t.Fatal(err)
	}
	select {
	case p := <-changed:
		t.Fatalf("own save reported as an external change of %q", p)
	case <-time.After(300 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte("from elsewhere"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("external write not reported")
	}
}
