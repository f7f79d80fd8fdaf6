// Package event is a small synchronous publish/subscribe bus connecting the
// document, the search navigator and the front end.
package event

import "github.com/bethropolis/seek/internal/core/find"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeDocumentLoaded        // a file was read into the buffer
	TypeDocumentSaved         // the buffer was written to a file
	TypeDocumentModified      // the buffer was edited; matches are stale
	TypeDocumentChangedOnDisk // the bound file changed outside the editor

	TypeSearchCompleted // a search produced a new match list
	TypeMatchSelected   // the current match moved

	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:               "Unknown",
	TypeDocumentLoaded:        "DocumentLoaded",
	TypeDocumentSaved:         "DocumentSaved",
	TypeDocumentModified:      "DocumentModified",
	TypeDocumentChangedOnDisk: "DocumentChangedOnDisk",
	TypeSearchCompleted:       "SearchCompleted",
	TypeMatchSelected:         "MatchSelected",
	TypeAppQuit:               "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the value passed to subscribers.
type Event struct {
	Type Type
	Data any
}

// DocumentData accompanies the document events.
type DocumentData struct {
	Path string
}

// SearchData accompanies TypeSearchCompleted.
type SearchData struct {
	Pattern string
	Literal bool
	Count   int
}

// MatchData accompanies TypeMatchSelected. Index is 0-based.
type MatchData struct {
	Span  find.Span
	Index int
	Count int
}
