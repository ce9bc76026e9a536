package romaji

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrDuplicateRule is returned when two rules share the same romaji key.
var ErrDuplicateRule = errors.New("duplicate romaji rule")

// Rule maps one romaji spelling to its kana.
type Rule struct {
	Key   string
	Value string
}

// Table is an immutable romaji to kana rule set.
// Rules are kept in match order: longest key first, insertion order among equal lengths.
// A Table is safe for concurrent use.
type Table struct {
	rules   []Rule
	lookup  map[string]string
	matcher *regexp.Regexp
}

// Default builds the standard table: the base syllables, their doubled-consonant
// variants and the punctuation rules.
func Default() (*Table, error) {
	return Build(syllables, symbols)
}

// MustDefault is like Default but panics on error.
func MustDefault() *Table {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// Build creates a table from syllable rules and symbol rules.
//
// Every syllable whose key does not start with a vowel or 'n' also yields a doubled
// variant: "kka" maps to Sokuon+"か". Derivation runs once over the syllables given,
// never over derived rules. Symbols are added as is.
func Build(syllables, symbols []Rule) (*Table, error) {
	t := &Table{lookup: make(map[string]string)}

	for _, r := range syllables {
		if err := t.add(r); err != nil {
			return nil, err
		}
	}
	for _, r := range syllables {
		if !doubles(r.Key) {
			continue
		}
		if err := t.add(Rule{Key: r.Key[:1] + r.Key, Value: Sokuon + r.Value}); err != nil {
			return nil, err
		}
	}
	for _, r := range symbols {
		if err := t.add(r); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(t.rules, func(i, j int) bool {
		return utf8.RuneCountInString(t.rules[i].Key) > utf8.RuneCountInString(t.rules[j].Key)
	})

	alternatives := make([]string, len(t.rules))
	for i, r := range t.rules {
		alternatives[i] = regexp.QuoteMeta(r.Key)
	}
	matcher, err := regexp.Compile(strings.Join(alternatives, "|"))
	if err != nil {
		return nil, fmt.Errorf("compile romaji matcher: %w", err)
	}
	t.matcher = matcher

	return t, nil
}

func (t *Table) add(r Rule) error {
	if r.Key == "" {
		return fmt.Errorf("empty romaji key for %q", r.Value)
	}
	if _, exists := t.lookup[r.Key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRule, r.Key)
	}
	t.lookup[r.Key] = r.Value
	t.rules = append(t.rules, r)
	return nil
}

func doubles(key string) bool {
	return !strings.ContainsRune("aiueon", rune(key[0]))
}

// Lookup returns the kana for an exact romaji key.
func (t *Table) Lookup(key string) (string, bool) {
	v, ok := t.lookup[key]
	return v, ok
}

// Replace returns the kana for a matched key, or the key itself if unknown.
func (t *Table) Replace(match string) string {
	if v, ok := t.lookup[match]; ok {
		return v
	}
	return match
}

// Matcher returns the combined alternation of all keys in match order.
// Go's regexp prefers earlier alternatives, so the longest key wins at each position.
func (t *Table) Matcher() *regexp.Regexp {
	return t.matcher
}

// Rules returns a copy of the rules in match order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Convert transliterates a plain string.
func (t *Table) Convert(s string) string {
	return t.matcher.ReplaceAllStringFunc(s, t.Replace)
}
