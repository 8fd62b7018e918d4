package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// span is a byte range [start, end) in the normalized text.
type span struct {
	start int
	end   int
}

func (s span) contains(pos int) bool {
	return pos >= s.start && pos < s.end
}

// rule is one entry of a field's priority table. accept receives the submatch
// indices of a single match and decides whether it yields a usable value.
type rule[T any] struct {
	name    string
	pattern *regexp.Regexp
	accept  func(text string, m []int) (T, bool)
}

// firstMatch walks rules in table order and each rule's matches left to right.
// The first accepted match wins; later rules are never consulted.
func firstMatch[T any](text string, rules []rule[T]) (T, span, bool) {
	var zero T
	for _, r := range rules {
		for _, m := range r.pattern.FindAllStringSubmatchIndex(text, -1) {
			if value, ok := r.accept(text, m); ok {
				return value, span{start: m[0], end: m[1]}, true
			}
		}
	}
	return zero, span{}, false
}

func ruleByName[T any](rules []rule[T], name string) (rule[T], bool) {
	for _, r := range rules {
		if r.name == name {
			return r, true
		}
	}
	return rule[T]{}, false
}

// window returns up to before bytes preceding s and up to after bytes
// following it.
func window(text string, s span, before, after int) (string, string) {
	start := s.start - before
	if start < 0 {
		start = 0
	}
	end := s.end + after
	if end > len(text) {
		end = len(text)
	}
	return text[start:s.start], text[s.end:end]
}

// sameClause trims a window pair to the comma/semicolon separated clause that
// holds the match.
func sameClause(pre, post string) (string, string) {
	if i := strings.LastIndexAny(pre, ",;"); i >= 0 {
		pre = pre[i+1:]
	}
	if i := strings.IndexAny(post, ",;"); i >= 0 {
		post = post[:i]
	}
	return pre, post
}

func group(text string, m []int, i int) string {
	if 2*i+1 >= len(m) || m[2*i] < 0 {
		return ""
	}
	return text[m[2*i]:m[2*i+1]]
}

func groupSpan(m []int, i int) span {
	return span{start: m[2*i], end: m[2*i+1]}
}

func byteBefore(text string, pos int) byte {
	if pos <= 0 || pos > len(text) {
		return 0
	}
	return text[pos-1]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// partOfDecimal reports whether the digits at s are glued to a decimal point
// on either side ("5.8", "72.5").
func partOfDecimal(text string, s span) bool {
	if byteBefore(text, s.start) == '.' {
		return true
	}
	return s.end+1 < len(text) && text[s.end] == '.' && isDigit(text[s.end+1])
}

var wordNumbers = map[string]int{
	"once":   1,
	"one":    1,
	"twice":  2,
	"two":    2,
	"thrice": 3,
	"three":  3,
	"four":   4,
	"five":   5,
	"six":    6,
	"seven":  7,
}

func atoi(value string) (int, bool) {
	if n, ok := wordNumbers[value]; ok {
		return n, true
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}

func atof(value string) (float64, bool) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
