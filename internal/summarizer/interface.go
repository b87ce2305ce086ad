package summarizer

import "context"

// Summarizer condenses a clean transcript with a text generation model.
type Summarizer interface {
	// Summarize runs the optional deduplication pass and then the
	// configured mode.
	Summarize(ctx context.Context, text string) (string, error)
	// Densify chunks text, extracts a chain-of-density summary per chunk
	// and reduces them into one.
	Densify(ctx context.Context, text string) (string, error)
	// TLDR summarizes each chunk and combines the results in one call.
	TLDR(ctx context.Context, text string) (string, error)
	// Deduplicate asks the model to remove repeated passages chunk by chunk.
	Deduplicate(ctx context.Context, text string) (string, error)
}
