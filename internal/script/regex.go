package script

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// file regex.go wraps github.com/dlclark/regexp2 behind the RegexHandle
// interface Value.Regex needs, grounded on grafana-k6's use of the same
// library for its own script-exposed regex type (js/modules/k6/... regexp
// bindings). regexp2 is chosen over the standard library's regexp because
// the data model's `flags` string and `replace`'s group-substitution
// semantics line up with PCRE-style backreferences that RE2 cannot express.

// scriptRegex is the concrete RegexHandle backing Regex values.
type scriptRegex struct {
	source string
	flags  string
	re     *regexp2.Regexp
}

func (r *scriptRegex) Source() string { return r.source }

// compileRegex builds a scriptRegex from a pattern and a flags string whose
// recognised letters are "i" (case-insensitive), "m" (multiline), and "s"
// (dot matches newline). Unknown letters are ignored rather than rejected,
// matching the permissive style of the rest of the standard library.
func compileRegex(pattern, flags string) (*scriptRegex, error) {
	opts := regexp2.None
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		}
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &scriptRegex{source: pattern, flags: flags, re: re}, nil
}

// matchGroups returns the full match plus every capture group's text (empty
// string for an unparticipating group) for the first match in s, or
// (nil, false) if there is no match.
func (r *scriptRegex) matchGroups(s string) ([]string, bool) {
	m, err := r.re.FindStringMatch(s)
	if err != nil || m == nil {
		return nil, false
	}
	return groupTexts(m), true
}

// matchAllGroups returns the group-text slice for every non-overlapping
// match in s, in order.
func (r *scriptRegex) matchAllGroups(s string) [][]string {
	var out [][]string
	m, err := r.re.FindStringMatch(s)
	for err == nil && m != nil {
		out = append(out, groupTexts(m))
		m, err = r.re.FindNextMatch(m)
	}
	return out
}

func groupTexts(m *regexp2.Match) []string {
	groups := m.Groups()
	out := make([]string, len(groups))
	for i, g := range groups {
		if len(g.Captures) > 0 {
			out[i] = g.Captures[len(g.Captures)-1].String()
		}
	}
	return out
}

// escapeRegex quotes s so it matches itself literally inside a pattern.
// regexp2 has no QuoteMeta of its own; the standard library's is
// RE2-flavored but the metacharacter set it escapes is the same one
// PCRE-style engines treat specially, so it is safe to reuse here.
func escapeRegex(s string) string {
	return regexp.QuoteMeta(s)
}

// replaceFirst substitutes the first match of r in s using a $-group
// replacement template expanded by expandGroupRefs (single-digit $0..$9
// only; ${name} is not recognised).
func replaceFirst(r *scriptRegex, s, repl string) (string, error) {
	return r.re.ReplaceFunc(s, func(m regexp2.Match) string {
		return expandGroupRefs(repl, groupTexts(&m))
	}, 0, 1)
}

// replaceAll substitutes every match of r in s using the same template
// rules as replaceFirst.
func replaceAll(r *scriptRegex, s, repl string) (string, error) {
	return r.re.ReplaceFunc(s, func(m regexp2.Match) string {
		return expandGroupRefs(repl, groupTexts(&m))
	}, -1, -1)
}

// expandGroupRefs performs minimal $0..$9 group substitution in repl ($0 is
// the whole match); any
// other '$' is passed through literally.
func expandGroupRefs(repl string, groups []string) string {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		if repl[i] == '$' && i+1 < len(repl) && repl[i+1] >= '0' && repl[i+1] <= '9' {
			idx := int(repl[i+1] - '0')
			if idx < len(groups) {
				b.WriteString(groups[idx])
			}
			i++
			continue
		}
		b.WriteByte(repl[i])
	}
	return b.String()
}
