package llm

import "context"

type implGenerator struct {
	completer Completer
	// slot holds one token while a completion is in flight
	slot chan struct{}
}

// NewGenerator wraps a Completer so that at most one completion is in
// flight at a time, whatever the number of callers.
func NewGenerator(c Completer) Generator {
	return &implGenerator{
		completer: c,
		slot:      make(chan struct{}, 1),
	}
}

func (g *implGenerator) Generate(ctx context.Context, template string, vars map[string]string) (string, error) {
	prompt, err := Render(template, vars)
	if err != nil {
		return "", err
	}

	select {
	case g.slot <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-g.slot }()

	return g.completer.Complete(ctx, prompt)
}
