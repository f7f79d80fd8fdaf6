// Package find compiles search patterns against a text snapshot and keeps a
// cyclic cursor over the resulting matches.
package find

import (
	"regexp"
	"sync"

	"github.com/bethropolis/seek/internal/logger"
)

// Options controls how search patterns are interpreted.
type Options struct {
	// Literal quotes the pattern so it matches itself verbatim.
	Literal bool
	// MaxMatches caps the number of collected matches. Zero or less means no cap.
	MaxMatches int
}

// Navigator holds the matches of the last successful search and the index
// of the current one. All methods are safe for concurrent use; every state
// transition happens under a single lock.
type Navigator struct {
	mu      sync.RWMutex
	opts    Options
	pattern string
	matches []Span
	cursor  int // -1 when there is no current match
}

// NewNavigator creates a navigator with no matches.
func NewNavigator(opts Options) *Navigator {
	return &Navigator{opts: opts, cursor: -1}
}

// Compile turns a user pattern into a regexp. Literal patterns are quoted and
// always compile.
func Compile(pattern string, literal bool) (*regexp.Regexp, error) {
	if literal {
		pattern = regexp.QuoteMeta(pattern)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// FindSpans returns every non-overlapping match of re in text, in order, as
// rune offsets. The scan resumes at the end of each match; an empty match
// advances by one rune, and an empty match abutting the previous match is
// skipped, so zero-width patterns always terminate. max <= 0 means no cap.
func FindSpans(re *regexp.Regexp, text string, max int) []Span {
	if max <= 0 {
		max = -1
	}
	locs := re.FindAllStringIndex(text, max)
	if len(locs) == 0 {
		return nil
	}
	conv := newOffsetConverter(text)
	spans := make([]Span, len(locs))
	for i, loc := range locs {
		spans[i] = Span{Start: conv.runeOffset(loc[0]), End: conv.runeOffset(loc[1])}
	}
	return spans
}

// Search compiles pattern and replaces the match list with its matches in
// text. On a compile failure it returns a *PatternError and keeps the
// previous matches and cursor. The cursor moves to the first match, or is
// cleared when nothing matched.
func (n *Navigator) Search(pattern, text string) (int, error) {
	n.mu.RLock()
	opts := n.opts
	n.mu.RUnlock()

	re, err := Compile(pattern, opts.Literal)
	if err != nil {
		logger.Warnf("Navigator: invalid pattern %q: %v", pattern, err)
		return 0, &PatternError{Pattern: pattern, Err: err}
	}

	spans := FindSpans(re, text, opts.MaxMatches)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.pattern = pattern
	n.matches = spans
	n.cursor = -1
	if len(spans) > 0 {
		n.cursor = 0
	}
	logger.DebugTagf("search", "Navigator: %d match(es) for %q (literal=%v)", len(spans), pattern, opts.Literal)
	return len(spans), nil
}

// CurrentSpan returns the match under the cursor.
func (n *Navigator) CurrentSpan() (Span, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.currentLocked()
}

// Advance moves to the next match, wrapping from the last to the first.
func (n *Navigator) Advance() (Span, bool) {
	return n.step(1)
}

// Retreat moves to the previous match, wrapping from the first to the last.
func (n *Navigator) Retreat() (Span, bool) {
	return n.step(-1)
}

func (n *Navigator) step(delta int) (Span, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := len(n.matches)
	if count == 0 {
		return Span{}, false
	}
	n.cursor = ((n.cursor+delta)%count + count) % count
	return n.currentLocked()
}

func (n *Navigator) currentLocked() (Span, bool) {
	if n.cursor < 0 || n.cursor >= len(n.matches) {
		return Span{}, false
	}
	return n.matches[n.cursor], true
}

// Reset discards the matches, e.g. after the text they were computed from
// has been edited. The pattern is kept so the search can be repeated.
func (n *Navigator) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.matches) > 0 {
		logger.DebugTagf("search", "Navigator: discarding %d match(es)", len(n.matches))
	}
	n.matches = nil
	n.cursor = -1
}

// Matches returns a copy of the current match list.
func (n *Navigator) Matches() []Span {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Span, len(n.matches))
	copy(out, n.matches)
	return out
}

// Position returns the 0-based cursor index and the match count.
// ok is false when there is no current match.
func (n *Navigator) Position() (index, count int, ok bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	count = len(n.matches)
	if n.cursor < 0 {
		return 0, count, false
	}
	return n.cursor, count, true
}

// Pattern returns the pattern of the last successful search.
func (n *Navigator) Pattern() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.pattern
}

// Literal reports whether patterns are matched verbatim.
func (n *Navigator) Literal() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.opts.Literal
}

// SetLiteral switches between literal and regular-expression patterns.
// Existing matches are kept until the next search.
func (n *Navigator) SetLiteral(literal bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.opts.Literal = literal
}
