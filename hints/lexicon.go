package hints

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/go-recipediff/diagram"
)

// LexiconFile is the on-disk YAML form of a Lexicon.
//
//	ingredients: [flour, sugar, olive oil]
//	locations:
//	  bake: oven
//	  simmer: pot
type LexiconFile struct {
	Ingredients []string          `yaml:"ingredients"`
	Locations   map[string]string `yaml:"locations"`
}

// Lexicon is a word-list Provider. Lookups are case-insensitive.
type Lexicon struct {
	ingredients map[string]struct{}
	locations   map[string]string
}

// NewLexicon builds a Lexicon from its file form.
func NewLexicon(f LexiconFile) *Lexicon {
	l := &Lexicon{
		ingredients: make(map[string]struct{}, len(f.Ingredients)),
		locations:   make(map[string]string, len(f.Locations)),
	}
	for _, s := range f.Ingredients {
		if s = normalize(s); s != "" {
			l.ingredients[s] = struct{}{}
		}
	}
	for pred, loc := range f.Locations {
		if pred = normalize(pred); pred != "" && loc != "" {
			l.locations[pred] = loc
		}
	}
	return l
}

// LoadLexicon reads a YAML lexicon from path.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon: %w", err)
	}
	var f LexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing lexicon %s: %w", path, err)
	}
	return NewLexicon(f), nil
}

// IsIngredient matches the whole text first, then each of its words.
func (l *Lexicon) IsIngredient(_ context.Context, text string) (bool, error) {
	text = normalize(text)
	if text == "" {
		return false, nil
	}
	if _, ok := l.ingredients[text]; ok {
		return true, nil
	}
	for _, w := range strings.Fields(text) {
		if _, ok := l.ingredients[w]; ok {
			return true, nil
		}
	}
	return false, nil
}

// Location returns the location listed for the event's predicate.
func (l *Lexicon) Location(_ context.Context, ev *diagram.Event) (string, bool, error) {
	loc, ok := l.locations[normalize(ev.Predicate())]
	return loc, ok, nil
}

// normalize lowercases s, trims it and collapses whitespace runs to one space.
func normalize(s string) string {
	var b strings.Builder
	needSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if b.Len() > 0 {
				needSpace = true
			}
			continue
		}
		if needSpace {
			b.WriteByte(' ')
			needSpace = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
