package app

// Status classifies how a run ended. Only a returned error is a failure;
// every Status is a normal terminal state.
type Status int

const (
	// StatusLinked means new links were added and the note was updated.
	StatusLinked Status = iota
	// StatusNoKeywords means extraction succeeded but yielded no phrases.
	StatusNoKeywords
	// StatusNoNewLinks means the weave added nothing; the note is untouched.
	StatusNoNewLinks
	// StatusCancelled means extraction was cancelled or timed out; nothing
	// was written.
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusLinked:
		return "linked"
	case StatusNoKeywords:
		return "no-keywords"
	case StatusNoNewLinks:
		return "no-new-links"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Outcome describes one run over a note.
type Outcome struct {
	Status  Status
	Linked  int
	Phrases []string
	// Text is the woven note, set only for StatusLinked.
	Text string
	// Written is false for dry runs.
	Written bool
}
