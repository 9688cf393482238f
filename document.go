package biomark

import "context"

// RawDocument is the markup fetched for one link.
type RawDocument struct {
	Name string
	URL  string
	HTML string
}

// TextDocument is the visible text of a RawDocument, trimmed fragments
// joined by single spaces.
type TextDocument struct {
	Name string
	URL  string
	Text string
}

// WorkDir is transient storage for one batch's fetched and converted files.
// Files written here are artifacts for inspection; the pipeline never reads
// them back.
type WorkDir interface {
	// SaveRaw writes the markup as <name>.html.
	SaveRaw(ctx context.Context, doc *RawDocument) error

	// SaveText writes the text as <name>.txt.
	SaveText(ctx context.Context, doc *TextDocument) error

	// Cleanup removes every .html and .txt file in the folder.
	Cleanup() error
}
