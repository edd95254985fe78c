package spec

import "strings"

// Annotations is the explicit-description side channel. Hosts write to it
// when a test or container carries a description override; raw nodes read it
// back through their Annotation method. Keyed by Handle, so overrides follow
// node identity, not names.
type Annotations struct {
	byHandle map[Handle]string
}

// NewAnnotations creates an empty store.
func NewAnnotations() *Annotations {
	return &Annotations{byHandle: make(map[Handle]string)}
}

// Set records an explicit description for h. The value is trimmed; an empty
// or whitespace-only description fails with ErrEmptyDescription immediately,
// rather than silently falling back at resolve time.
func (a *Annotations) Set(h Handle, description string) error {
	cleaned := strings.TrimSpace(description)
	if cleaned == "" {
		return ErrEmptyDescription
	}
	a.byHandle[h] = cleaned
	return nil
}

// Get returns the explicit description for h, or "" when none is set.
func (a *Annotations) Get(h Handle) string {
	return a.byHandle[h]
}
