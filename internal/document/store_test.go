package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"plain",
		"line one\nline two\n",
		"no trailing newline\nlast",
		"\r\nwindows\r\n",
		"unicode: héllo wörld 日本語 😀",
	}
	for _, text := range texts {
		s := NewStore(afero.NewMemMapFs())
		if err := s.Save("/doc.txt", text); err != nil {
			t.Fatalf("Save(%q) error: %v", text, err)
		}
		got, err := s.Load("/doc.txt")
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if got != text {
			t.Errorf("round trip = %q, want %q", got, text)
		}
	}
}

func TestRoundTripOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	s := NewStore(nil)
	text := "first\nsecond ✓\n"
	if err := s.Save(path, text); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := NewStore(nil).Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got != text {
		t.Errorf("Load = %q, want %q", got, text)
	}
}

func TestLoadMissingIsEmpty(t *testing.T) {
	s := NewStore(afero.NewMemMapFs())
	s.SetText("stale")

	got, err := s.Load("/nope.txt")
	if err != nil {
		t.Fatalf("Load(missing) error: %v", err)
	}
	if got != "" || s.Text() != "" {
		t.Errorf("Load(missing) = %q, buffer %q; want empty", got, s.Text())
	}
	if s.Path() != "/nope.txt" {
		t.Errorf("Path() = %q, want the missing path", s.Path())
	}
	if s.Modified() {
		t.Error("a freshly loaded document should not be modified")
	}
}

func TestLoadUnreadable(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(nil)
	s.SetText("keep me")

	_, err := s.Load(dir) // a directory exists but cannot be read as a file
	if err == nil {
		t.Fatal("Load(directory) returned nil error")
	}
	if !errors.Is(err, ErrRead) {
		t.Errorf("error %v does not wrap ErrRead", err)
	}
	if s.Text() != "keep me" {
		t.Errorf("failed load changed the buffer to %q", s.Text())
	}
}

func TestSaveOverwrites(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/doc.txt", []byte("a much longer original body"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := NewStore(fsys)
	if err := s.Save("/doc.txt", "short"); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	data, _ := afero.ReadFile(fsys, "/doc.txt")
	if string(data) != "short" {
		t.Errorf("file = %q, want %q", data, "short")
	}
	info, _ := fsys.Stat("/doc.txt")
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want the original 0600", info.Mode().Perm())
	}
}

func TestSaveFailure(t *testing.T) {
	s := NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	err := s.Save("/doc.txt", "text")
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("Save on read-only fs = %v, want ErrWrite", err)
	}
	if s.Path() != "" {
		t.Errorf("failed save bound the document to %q", s.Path())
	}
}

func TestSaveToDirectory(t *testing.T) {
	s := NewStore(nil)
	if err := s.Save(t.TempDir(), "text"); !errors.Is(err, ErrWrite) {
		t.Errorf("Save(directory) = %v, want ErrWrite", err)
	}
}

func TestSaveWithoutPath(t *testing.T) {
	s := NewStore(afero.NewMemMapFs())
	if err := s.Save("", "text"); !errors.Is(err, ErrNoPath) {
		t.Errorf("Save(\"\") = %v, want ErrNoPath", err)
	}

	if _, err := s.Load("/a.txt"); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("", "bound"); err != nil {
		t.Fatalf("Save to bound path error: %v", err)
	}
	if got, _ := Read(s.Fs(), "/a.txt"); got != "bound" {
		t.Errorf("bound path holds %q", got)
	}
}

func TestModifiedTracking(t *testing.T) {
	s := NewStore(afero.NewMemMapFs())
	if s.Modified() {
		t.Fatal("new store is modified")
	}
	s.SetText("")
	if s.Modified() {
		t.Error("setting identical text marked the store modified")
	}
	s.SetText("edit")
	if !s.Modified() {
		t.Error("SetText did not mark the store modified")
	}
	if err := s.Save("/x.txt", s.Text()); err != nil {
		t.Fatal(err)
	}
	if s.Modified() {
		t.Error("Save did not clear the modified flag")
	}
}

func TestChangedOnDisk(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewStore(fsys)
	if changed, err := s.ChangedOnDisk(); err != nil || changed {
		t.Fatalf("unbound store ChangedOnDisk = %v, %v", changed, err)
	}
	if err := s.Save("/f.txt", "v1"); err != nil {
		t.Fatal(err)
	}
	if changed, _ := s.ChangedOnDisk(); changed {
		t.Error("file reported changed right after save")
	}
	if err := afero.WriteFile(fsys, "/f.txt", []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if changed, _ := s.ChangedOnDisk(); !changed {
		t.Error("external write not reported")
	}
}

func TestWatcherReportsExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.txt")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 4)
	w, err := Watch(path, 20*time.Millisecond, func(p string) { changed <- p })
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if p != w.Path() {
			t.Errorf("change reported for %q, want %q", p, w.Path())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported for an external write")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	w, err := Watch(path, 0, func(string) {})
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close error: %v", err)
	}
}
