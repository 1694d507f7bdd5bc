package prompts

import (
	"fmt"
	"sync"
)

type Template struct {
	Name     PromptName
	Version  int
	Defaults func(in *Input)
	Render   func(Input) (string, error)
	Validate Validator
}

var (
	registry     = map[PromptName]Template{}
	registerOnce sync.Once
)

func Register(t Template) {
	registry[t.Name] = t
}

// Build renders the named prompt. Defaults are applied before validation.
func Build(name PromptName, in Input) (string, error) {
	registerOnce.Do(registerAll)

	t, ok := registry[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt: %s", string(name))
	}
	if t.Defaults != nil {
		t.Defaults(&in)
	}
	if t.Validate != nil {
		if err := t.Validate(in); err != nil {
			return "", fmt.Errorf("%s: %w", string(name), err)
		}
	}
	out, err := t.Render(in)
	if err != nil {
		return "", fmt.Errorf("%s render: %w", string(name), err)
	}
	return out, nil
}
