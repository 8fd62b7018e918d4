package parser

import (
	"regexp"
	"strings"
)

const (
	minAge = 10
	maxAge = 120
)

var (
	durationLead  = regexp.MustCompile(`\b(?:in|within|over|next|for|past|last|since)\s+(?:the\s+next\s+)?(?:about\s+|around\s+)?$`)
	measureLeadIn = regexp.MustCompile(`(?:weigh|height|tall|kg|lb|pound|cm|target|goal weight)`)
)

var ageRules = []rule[int]{
	{
		name:    "age_gender_shorthand",
		pattern: regexp.MustCompile(`\b(\d{2})[mf]\b|\b[mf](\d{2})\b`),
		accept: func(text string, m []int) (int, bool) {
			g := 1
			if groupSpan(m, 1).start < 0 {
				g = 2
			}
			// "1.65m" is a height in meters.
			if partOfDecimal(text, groupSpan(m, g)) {
				return 0, false
			}
			return validAge(group(text, m, g))
		},
	},
	{
		name:    "age_years_old",
		pattern: regexp.MustCompile(`\b(\d{1,3})\s*(?:years?|yrs?|y/o|y\.o|yo)\b(?:\s*old)?`),
		accept: func(text string, m []int) (int, bool) {
			num := groupSpan(m, 1)
			if partOfDecimal(text, num) {
				return 0, false
			}
			pre, _ := window(text, num, 30, 0)
			if durationLead.MatchString(pre) {
				return 0, false
			}
			return validAge(group(text, m, 1))
		},
	},
	{
		name:    "age_hyphenated",
		pattern: regexp.MustCompile(`\b(\d{1,3})\s*-\s*(?:years?|yrs?)\s*-?\s*old\b`),
		accept: func(text string, m []int) (int, bool) {
			return validAge(group(text, m, 1))
		},
	},
	{
		name:    "age_label",
		pattern: regexp.MustCompile(`\bage[ds]?\s*(?:is|of|:|=|-)?\s*(?:about\s+|around\s+)?(\d{1,3})\b`),
		accept: func(text string, m []int) (int, bool) {
			if partOfDecimal(text, groupSpan(m, 1)) {
				return 0, false
			}
			return validAge(group(text, m, 1))
		},
	},
	{
		name:    "age_i_am",
		pattern: regexp.MustCompile(`\bi\s*(?:am|'m|’m)\s+(?:a\s+|about\s+|around\s+|only\s+|now\s+)?(\d{1,3})\b`),
		accept: func(text string, m []int) (int, bool) {
			num := groupSpan(m, 1)
			_, post := window(text, num, 0, 12)
			if measurementSuffix.MatchString(post) || weightSuffix.MatchString(post) {
				return 0, false
			}
			return validAge(group(text, m, 1))
		},
	},
	{
		name:    "age_bare_number",
		pattern: regexp.MustCompile(`\b(\d{2,3})\s*(?:,|years?\b|yrs?\b|yo\b)`),
		accept: func(text string, m []int) (int, bool) {
			num := groupSpan(m, 1)
			if partOfDecimal(text, num) {
				return 0, false
			}
			switch byteBefore(text, num.start) {
			case '\'', '-':
				return 0, false
			}
			pre, _ := window(text, num, 30, 0)
			if durationLead.MatchString(pre) {
				return 0, false
			}
			pre, _ = sameClause(pre[max(0, len(pre)-12):], "")
			if measureLeadIn.MatchString(pre) {
				return 0, false
			}
			return validAge(group(text, m, 1))
		},
	},
}

func validAge(value string) (int, bool) {
	age, ok := atoi(strings.TrimSpace(value))
	if !ok || age < minAge || age > maxAge {
		return 0, false
	}
	return age, true
}

func extractAge(text string) (int, span, bool) {
	return firstMatch(text, ageRules)
}
