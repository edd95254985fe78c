// Package describe converts test identifiers, docstrings, and explicit
// annotations into natural-language descriptions.
//
// The rules are fixed, deterministic heuristics for snake_case and CamelCase
// identifiers with conventional leading words (test, it, describe, with,
// without, when). This is not a general natural-language generator.
package describe

import (
	"strings"
	"unicode"
)

// Kind selects the variant-specific stripping and prefix rules.
type Kind int

const (
	// Test strips test/it and never receives an article.
	Test Kind = iota
	// DescribedObject strips test/describe and receives a/an.
	DescribedObject
	// Context strips test/with/without/when and receives with/without/when.
	Context
)

// Input carries the raw description sources for one node.
// Precedence: Annotation, then the first line of Docstring, then Identifier.
type Input struct {
	Identifier string
	Docstring  string
	Annotation string
}

// stripPrefixes maps each kind to the leading words removed from
// identifier-derived descriptions.
var stripPrefixes = map[Kind][]string{
	Test:            {"test", "it"},
	DescribedObject: {"test", "describe"},
	Context:         {"test", "with", "without", "when"},
}

// minorWords are lowercased everywhere except as the first word: articles,
// prepositions, coordinating conjunctions, and common auxiliary verbs.
var minorWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"and": true, "but": true, "or": true, "nor": true, "so": true, "yet": true,
	"as": true, "at": true, "by": true, "for": true, "from": true, "in": true,
	"into": true, "of": true, "off": true, "on": true, "onto": true,
	"over": true, "per": true, "to": true, "up": true, "upon": true,
	"via": true, "with": true, "without": true, "when": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "has": true, "have": true, "had": true,
	"do": true, "does": true, "did": true, "can": true, "could": true,
	"may": true, "might": true, "must": true, "shall": true, "should": true,
	"will": true, "would": true,
}

// Resolver derives descriptions. The zero value is not usable; call New.
type Resolver struct {
	strip map[Kind][]string
	minor map[string]bool
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithExtraStripPrefixes appends prefix words to every kind's strip list.
func WithExtraStripPrefixes(words ...string) Option {
	return func(r *Resolver) {
		for k := range r.strip {
			r.strip[k] = append(r.strip[k], words...)
		}
	}
}

// WithExtraMinorWords adds words to the minor-word set.
func WithExtraMinorWords(words ...string) Option {
	return func(r *Resolver) {
		for _, w := range words {
			r.minor[strings.ToLower(w)] = true
		}
	}
}

// New creates a Resolver with the default rule set.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		strip: make(map[Kind][]string, len(stripPrefixes)),
		minor: make(map[string]bool, len(minorWords)),
	}
	for k, v := range stripPrefixes {
		r.strip[k] = append([]string(nil), v...)
	}
	for w := range minorWords {
		r.minor[w] = true
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the base description for a node, without any article or
// conjunction. First non-empty source wins: annotation (verbatim, trimmed),
// docstring first line (trimmed), identifier-derived text.
func (r *Resolver) Resolve(kind Kind, in Input) string {
	if s := strings.TrimSpace(in.Annotation); s != "" {
		return s
	}
	if s := firstLine(in.Docstring); s != "" {
		return s
	}
	return r.fromIdentifier(kind, in.Identifier)
}

// WithPrefix returns the display description: the base description with the
// variant's article or conjunction prepended. An empty base description is
// legal and yields the bare article/conjunction.
func (r *Resolver) WithPrefix(kind Kind, in Input) string {
	desc := r.Resolve(kind, in)

	switch kind {
	case DescribedObject:
		if startsWithWord(desc, "with") || startsWithWord(desc, "without") {
			return desc
		}
		return joinWord(article(desc), desc)
	case Context:
		conj := r.conjunction(in.Identifier)
		if startsWithWord(desc, conj) {
			return desc
		}
		return joinWord(conj, desc)
	default:
		return desc
	}
}

// fromIdentifier converts an identifier into words, normalizes case, and
// strips one leading prefix word.
func (r *Resolver) fromIdentifier(kind Kind, identifier string) string {
	text := splitWords(identifier)

	if kind == Context {
		// Conditions read as prose: lowercase throughout.
		text = strings.ToLower(text)
	} else {
		text = r.lowerMinor(text)
	}

	return stripLeading(text, r.strip[kind])
}

// conjunction picks with/without/when from the original identifier's leading
// word. Most specific first: without, then when, then the default with.
func (r *Resolver) conjunction(identifier string) string {
	first := strings.ToLower(leadingWord(splitWords(identifier)))
	switch first {
	case "without":
		return "without"
	case "when":
		return "when"
	default:
		return "with"
	}
}

// lowerMinor lowercases minor words everywhere except the first word.
func (r *Resolver) lowerMinor(text string) string {
	fields := strings.Fields(text)
	for i := 1; i < len(fields); i++ {
		if r.minor[strings.ToLower(fields[i])] {
			fields[i] = strings.ToLower(fields[i])
		}
	}
	return strings.Join(fields, " ")
}

// splitWords turns snake_case and CamelCase into space-separated words:
// underscores become spaces, a space is inserted before each internal
// uppercase letter not already preceded by whitespace, and runs of
// whitespace collapse to single spaces.
func splitWords(identifier string) string {
	s := strings.ReplaceAll(identifier, "_", " ")

	var b strings.Builder
	b.Grow(len(s) + 8)
	prev := rune(0)
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsSpace(prev) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// stripLeading removes at most one leading prefix word, case-insensitively.
// The prefix must be the whole first word; stripping the only word leaves an
// empty description, which is legal.
func stripLeading(text string, prefixes []string) string {
	first := leadingWord(text)
	if first == "" {
		return text
	}
	for _, p := range prefixes {
		if strings.EqualFold(first, p) {
			return strings.TrimSpace(text[len(first):])
		}
	}
	return text
}

// article returns "an" when text starts with a vowel, else "a".
func article(text string) string {
	if text == "" {
		return "a"
	}
	switch unicode.ToLower([]rune(text)[0]) {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}

// firstLine returns the trimmed first line of s.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// leadingWord returns the first whitespace-delimited word of text.
func leadingWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// startsWithWord reports whether text begins with word as a whole word,
// case-insensitively.
func startsWithWord(text, word string) bool {
	if len(text) < len(word) {
		return false
	}
	if !strings.EqualFold(text[:len(word)], word) {
		return false
	}
	return len(text) == len(word) || text[len(word)] == ' '
}

// joinWord prepends word to text, omitting the separator when text is empty.
func joinWord(word, text string) string {
	if text == "" {
		return word
	}
	return word + " " + text
}
