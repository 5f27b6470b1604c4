package recorder

import "CryptoDash/internal/model"

// QuoteEvent is one applied poll: the quote and the simulated split shown for it.
type QuoteEvent struct {
	Quote *model.Quote
	Split model.VolumeSplit
}

// Recorder persists applied quotes for later analysis.
type Recorder interface {
	RecordQuote(evt *QuoteEvent) error
	Close() error
}
