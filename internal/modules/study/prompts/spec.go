package prompts

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Spec is the declaration format used by registerAll.
type Spec struct {
	Name    PromptName
	Version int
	// Body is a Go template over Input.
	Body       string
	Defaults   func(in *Input)
	Validators []Validator
}

// MakeTemplate compiles a Spec into a Template.
func MakeTemplate(s Spec) (Template, error) {
	if strings.TrimSpace(string(s.Name)) == "" {
		return Template{}, fmt.Errorf("missing prompt name")
	}
	if s.Version <= 0 {
		return Template{}, fmt.Errorf("invalid version for %s", s.Name)
	}
	bodyT, err := template.New(string(s.Name)).Option("missingkey=zero").Parse(s.Body)
	if err != nil {
		return Template{}, fmt.Errorf("%s body template parse: %w", s.Name, err)
	}
	t := Template{
		Name:     s.Name,
		Version:  s.Version,
		Defaults: s.Defaults,
		Render: func(in Input) (string, error) {
			var b bytes.Buffer
			if err := bodyT.Execute(&b, in); err != nil {
				return "", err
			}
			return strings.TrimSpace(b.String()), nil
		},
	}
	if len(s.Validators) > 0 {
		t.Validate = func(in Input) error {
			for _, v := range s.Validators {
				if v == nil {
					continue
				}
				if err := v(in); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return t, nil
}

func RegisterSpec(s Spec) {
	t, err := MakeTemplate(s)
	if err != nil {
		panic(err)
	}
	Register(t)
}
