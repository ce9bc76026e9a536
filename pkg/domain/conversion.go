package domain

import "github.com/aretw0/japanizer/pkg/richtext"

// Decision is the branch taken by the prefix gate for one message.
type Decision string

const (
	DecisionSkip        Decision = "skip"        // prevent prefix stripped, no conversion
	DecisionForced      Decision = "forced"      // force prefix stripped, converted
	DecisionConditional Decision = "conditional" // trigger condition matched, converted
	DecisionPassThrough Decision = "pass"        // left untouched
	DecisionDisabled    Decision = "disabled"    // sender turned conversion off
)

// Converts reports whether the decision runs the conversion pipeline.
func (d Decision) Converts() bool {
	return d == DecisionForced || d == DecisionConditional
}

// Condition decides whether a whole message qualifies for conversion.
type Condition interface {
	Matches(plain string) bool
}

// Settings is the read-only conversion context shared by all messages.
type Settings struct {
	// PreventPrefix skips conversion and is stripped once. Empty disables it.
	PreventPrefix string

	// ForcePrefix forces conversion and is stripped once. Empty disables it.
	ForcePrefix string

	// Condition gates conversion of unprefixed messages. Nil never matches.
	Condition Condition

	// Template decorates converted messages. Nil returns the converted text as is.
	Template *richtext.Template
}

// Outcome is the result of running one message through the pipeline.
type Outcome struct {
	Original  richtext.Text `json:"original"`
	Converted richtext.Text `json:"converted"`
	Decision  Decision      `json:"decision"`
	Changed   bool          `json:"changed"`
}
