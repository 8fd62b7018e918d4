package parser

import (
	"math"
	"regexp"
)

const (
	minFrequency = 1
	maxFrequency = 14
)

const (
	countWord = `(\d{1,2}|one|two|three|four|five|six|seven)`
	perWeek   = `\s*(?:(?:per|a|an|each|every|/|in\s+a)\s*(?:week|wk)|weekly)\b`
)

var rangeTail = regexp.MustCompile(`\d\s*(?:-|–|to)\s*$`)

var frequencyRules = []rule[int]{
	{
		name:    "frequency_times",
		pattern: regexp.MustCompile(`\b` + countWord + `\s*(?:times|x|sessions?|workouts?)` + perWeek),
		accept:  acceptCount(maxFrequency),
	},
	{
		name:    "frequency_word",
		pattern: regexp.MustCompile(`\b(once|twice|thrice)` + perWeek),
		accept:  acceptCount(maxFrequency),
	},
	{
		name:    "frequency_days",
		pattern: regexp.MustCompile(`\b` + countWord + `\s*days?` + perWeek),
		accept:  acceptCount(7),
	},
	{
		name:    "frequency_daily",
		pattern: regexp.MustCompile(`\b(?:every\s*day|each\s+day|daily)\b`),
		accept: func(string, []int) (int, bool) {
			return 7, true
		},
	},
	{
		name:    "frequency_range",
		pattern: regexp.MustCompile(`\b(\d{1,2})\s*(?:-|–|to)\s*(\d{1,2})\s*(?:times|x|days?|sessions?|workouts?)?` + perWeek),
		accept: func(text string, m []int) (int, bool) {
			low, _ := atoi(group(text, m, 1))
			high, _ := atoi(group(text, m, 2))
			if low > high {
				return 0, false
			}
			return validFrequency(int(math.Round(float64(low+high)/2)), maxFrequency)
		},
	},
}

// acceptCount reads the count in group 1, rejecting the upper end of a range
// such as "3-4 times a week" so the range rule can average it.
func acceptCount(upper int) func(string, []int) (int, bool) {
	return func(text string, m []int) (int, bool) {
		num := groupSpan(m, 1)
		pre, _ := window(text, num, 8, 0)
		if rangeTail.MatchString(pre) {
			return 0, false
		}
		n, ok := atoi(group(text, m, 1))
		if !ok {
			return 0, false
		}
		return validFrequency(n, upper)
	}
}

func validFrequency(n, upper int) (int, bool) {
	if n < minFrequency || n > upper {
		return 0, false
	}
	return n, true
}

func extractFrequency(text string) (int, bool) {
	n, _, ok := firstMatch(text, frequencyRules)
	return n, ok
}
