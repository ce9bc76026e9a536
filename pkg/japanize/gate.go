package japanize

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/japanizer/internal/logging"
	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/richtext"
	"github.com/dlclark/regexp2"
)

const (
	DefaultForcePrefix   = "!"
	DefaultPreventPrefix = "?"
)

// japaneseScript covers the Hiragana, Katakana and Han scripts, half-width forms and
// supplementary ideographs included, plus the kana block for marks such as ー.
const japaneseScript = `\u3040-\u30FF\p{Hiragana}\p{Katakana}\p{Han}`

// DefaultCondition matches messages with at least three consecutive romaji syllables
// and no tab, kana or kanji anywhere.
const DefaultCondition = `^(?!.*[\t` + japaneseScript + `])` +
	`(?:a|i|u|e|o|ka|ki|ku|ke|ko|sa|shi|su|se|so|ta|chi|tsu|te|to|na|ni|nu|ne|no|` +
	`ha|hi|fu|he|ho|ma|mi|mu|me|mo|ya|yu|yo|ra|ri|ru|re|ro|wa|wo|` +
	`ga|gi|gu|ge|go|za|ji|zu|ze|zo|da|de|do|ba|bi|bu|be|bo|pa|pi|pu|pe|po|` +
	`kya|kyu|kyo|sha|shu|sho|cha|chu|cho|nya|nyu|nyo|hya|hyu|hyo|mya|myu|myo|` +
	`rya|ryu|ryo|gya|gyu|gyo|ja|ju|jo|bya|byu|byo|pya|pyu|pyo|` +
	`n(?![aiueoyn])|nn|([ckstnhmyrwgzjdbp])\1){3,}.*$`

// DefaultMatchTimeout bounds a single condition evaluation.
const DefaultMatchTimeout = 100 * time.Millisecond

// Condition is a whole-string trigger pattern.
// Patterns may use lookaround and backreferences. A Condition is safe for concurrent use.
type Condition struct {
	source string
	re     *regexp2.Regexp
}

// CompileCondition compiles pattern so that it must match the entire message.
func CompileCondition(pattern string) (*Condition, error) {
	re, err := regexp2.Compile(`\A(?:`+pattern+`)\z`, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCondition, err)
	}
	re.MatchTimeout = DefaultMatchTimeout
	return &Condition{source: pattern, re: re}, nil
}

// MustCompileCondition is like CompileCondition but panics on error.
func MustCompileCondition(pattern string) *Condition {
	c, err := CompileCondition(pattern)
	if err != nil {
		panic(err)
	}
	return c
}

// Matches reports whether plain matches the condition as a whole.
// A match that exceeds the timeout counts as no match.
func (c *Condition) Matches(plain string) bool {
	ok, err := c.Match(plain)
	return err == nil && ok
}

// Match is like Matches but reports a timed out evaluation as an error.
func (c *Condition) Match(plain string) (bool, error) {
	return c.re.MatchString(plain)
}

type matchErrorer interface {
	Match(plain string) (bool, error)
}

// String returns the pattern as given to CompileCondition.
func (c *Condition) String() string {
	return c.source
}

// Gate classifies messages and strips control prefixes.
type Gate struct {
	preventPrefix string
	forcePrefix   string
	condition     domain.Condition
	logger        *slog.Logger
}

// NewGate creates a gate from the prefix and condition part of settings.
func NewGate(settings domain.Settings) Gate {
	return Gate{
		preventPrefix: settings.PreventPrefix,
		forcePrefix:   settings.ForcePrefix,
		condition:     settings.Condition,
		logger:        logging.NewNop(),
	}
}

// Decide returns the message to work on and the branch it takes.
//
// Checks run in order: prevent prefix, force prefix, trigger condition. A matched prefix is
// removed exactly once. Messages that match nothing are returned as is.
func (g Gate) Decide(msg richtext.Text) (richtext.Text, domain.Decision) {
	if rest, ok := msg.TrimPrefix(g.preventPrefix); ok {
		return rest, domain.DecisionSkip
	}
	if rest, ok := msg.TrimPrefix(g.forcePrefix); ok {
		return rest, domain.DecisionForced
	}
	if g.condition != nil && g.matches(msg.String()) {
		return msg, domain.DecisionConditional
	}
	return msg, domain.DecisionPassThrough
}

func (g Gate) matches(plain string) bool {
	m, ok := g.condition.(matchErrorer)
	if !ok {
		return g.condition.Matches(plain)
	}
	matched, err := m.Match(plain)
	if err != nil {
		g.logger.Debug("trigger condition evaluation failed", "condition", g.condition, "error", err)
		return false
	}
	return matched
}
