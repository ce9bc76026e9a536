package richtext

import "strings"

// Matcher finds non-overlapping matches in a string.
// *regexp.Regexp satisfies it.
type Matcher interface {
	FindAllStringIndex(s string, n int) [][]int
}

// ReplaceAll replaces every match of m in the plain-text projection of t.
//
// Matches are located on the flattened text and mapped back onto run boundaries.
// The replacement run takes the Style and Actions of the run in which the match starts;
// a match spanning several runs removes the covered content from all of them.
// Unmatched content keeps its run and metadata. If nothing matches, t is returned as is.
func (t Text) ReplaceAll(m Matcher, repl func(match string) string) Text {
	plain := t.String()
	locs := nonEmpty(m.FindAllStringIndex(plain, -1))
	if len(locs) == 0 {
		return t
	}
	return t.splice(plain, locs, repl)
}

// TrimPrefix removes one leading occurrence of prefix, even when it spans runs.
// The second return value reports whether the prefix was present.
func (t Text) TrimPrefix(prefix string) (Text, bool) {
	if prefix == "" {
		return t, false
	}
	plain := t.String()
	if !strings.HasPrefix(plain, prefix) {
		return t, false
	}
	out := t.splice(plain, [][]int{{0, len(prefix)}}, func(string) string { return "" })
	return out, true
}

func (t Text) splice(plain string, locs [][]int, repl func(string) string) Text {
	out := make(Text, 0, len(t)+len(locs))
	offset, mi := 0, 0

	for _, run := range t {
		start, end := offset, offset+len(run.Content)
		offset = end

		if start == end {
			out = append(out, run)
			continue
		}

		cur := start
		for cur < end {
			if mi < len(locs) && locs[mi][0] <= cur {
				ms, me := locs[mi][0], locs[mi][1]
				if ms == cur {
					if s := repl(plain[ms:me]); s != "" {
						out = append(out, Run{Content: s, Style: run.Style, Actions: run.Actions})
					}
				}
				if me <= end {
					cur = me
					mi++
				} else {
					cur = end
				}
				continue
			}

			next := end
			if mi < len(locs) && locs[mi][0] < end {
				next = locs[mi][0]
			}
			out = append(out, Run{Content: plain[cur:next], Style: run.Style, Actions: run.Actions})
			cur = next
		}
	}
	return out
}

func nonEmpty(locs [][]int) [][]int {
	out := locs[:0]
	for _, l := range locs {
		if l[1] > l[0] {
			out = append(out, l)
		}
	}
	return out
}
