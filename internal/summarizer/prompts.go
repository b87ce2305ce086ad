package summarizer

import (
	_ "embed"
	"fmt"
	"os"
)

// DefaultDensityPrompt is the built-in chain-of-density template. It takes
// the content, content_category, entity_range, max_words, iterations and
// max_relationship variables.
//
//go:embed prompts/chain_of_density.md
var DefaultDensityPrompt string

const (
	combinePrompt = "Combine the following summaries:\n{summaries}"

	dedupPrompt = "Deduplicate the following text:\n {text}"

	tldrChunkPrompt = "Please read the provided Original section to understand the context and content. " +
		"Use this understanding to generate a summary of the Original section. " +
		"Separate the transcript into chunks, and sequentially create a summary for each chunk. " +
		"Focus on summarizing the Original section.\n" +
		"Summarized Sections:\n" +
		"1. For each chunk, provide a concise summary. Start each summary with \"Chunk (X of Y):\" " +
		"where X is the current chunk number and Y is the total number of chunks.\n" +
		"\n\nOriginal Section:\n" +
		"{text}"

	tldrCombinePrompt = "1. Read the Summarized Sections: Carefully review all the summarized sections you have generated. " +
		"Ensure that you understand the main points, key details, and essential information from each section.\n" +
		"2. Identify Main Themes: Identify the main themes and topics that are prevalent throughout the summarized sections. " +
		"These themes will form the backbone of your final summary.\n" +
		"3. Consolidate Information: Merge the information from the different summarized sections, focusing on the main themes you have identified. " +
		"Avoid redundancy and ensure the consolidated information flows logically.\n" +
		"4. Preserve Essential Details: Preserve the essential details and nuances that are crucial for understanding the document. " +
		"Consider the type of document and the level of detail required to capture its essence.\n" +
		"5. Draft the Final Summary: After considering all the above points, draft a final summary that represents the main ideas, " +
		"themes, and essential details of the note. Start this section with \"Final Summary:\".\n" +
		"\n\nSummarized Sections:\n{summaries}"
)

// LoadPrompt reads a density template from path. An empty path returns
// the built-in template.
func LoadPrompt(path string) (string, error) {
	if path == "" {
		return DefaultDensityPrompt, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt: %w", err)
	}
	return string(data), nil
}
