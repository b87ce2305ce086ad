package llm

import (
	"fmt"

	"github.com/tmc/langchaingo/prompts"
)

// Render substitutes {name} placeholders with vars using f-string syntax.
// "{{" and "}}" produce literal braces, so JSON examples in a template must
// be escaped. A placeholder without a value is an error.
func Render(template string, vars map[string]string) (string, error) {
	values := make(map[string]any, len(vars))
	names := make([]string, 0, len(vars))
	for k, v := range vars {
		values[k] = v
		names = append(names, k)
	}

	tmpl := prompts.PromptTemplate{
		Template:       template,
		InputVariables: names,
		TemplateFormat: prompts.TemplateFormatFString,
	}
	out, err := tmpl.Format(values)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return out, nil
}
