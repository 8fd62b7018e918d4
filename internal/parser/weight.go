package parser

import (
	"regexp"
)

const (
	// Bounds for weights written with an explicit unit, after conversion.
	minExplicitWeightKG = 30
	maxExplicitWeightKG = 300
	// Bare-number bands; kilograms are tried first.
	minBareKG = 40
	maxBareKG = 150
	minBareLB = 90
	maxBareLB = 350
)

type weightValue struct {
	kg   float64
	unit string
}

// targetLeadIn matches phrases that introduce a target or a change rather than
// the current weight.
var targetLeadIn = regexp.MustCompile(`\b(?:lose|losing|gain|gaining|drop|dropping|shed|shedding|cut|put\s+on|add|reach|reaching|hit|(?:down|up|get|go|be)\s+to|target(?:\s+weight)?(?:\s+is|\s+of)?|goal\s+weight(?:\s+is|\s+of)?|(?:ideal|desired|dream)\s+weight(?:\s+is|\s+of)?)\s*[:=]?\s*(?:about\s+|around\s+|another\s+)?$`)

var (
	heightIndicator = regexp.MustCompile(`(?:height|tall|cm\b|centimet)`)
	bareNumber      = regexp.MustCompile(`\b(\d{2,3})\b`)
)

var weightRules = []rule[weightValue]{
	{
		name:    "weight_explicit_unit",
		pattern: regexp.MustCompile(`\b(\d{2,3}(?:\.\d{1,2})?)\s*` + weightUnit + `\b`),
		accept: func(text string, m []int) (weightValue, bool) {
			if byteBefore(text, m[0]) == '.' {
				return weightValue{}, false
			}
			pre, _ := window(text, span{start: m[0], end: m[1]}, 30, 0)
			if targetLeadIn.MatchString(pre) {
				return weightValue{}, false
			}
			value, ok := atof(group(text, m, 1))
			if !ok {
				return weightValue{}, false
			}
			kg, unit := toKG(value, group(text, m, 2))
			if kg < minExplicitWeightKG || kg > maxExplicitWeightKG {
				return weightValue{}, false
			}
			return weightValue{kg: kg, unit: unit}, true
		},
	},
}

// extractWeight tries the explicit-unit rules first and falls back to bare
// numbers outside the consumed spans.
func extractWeight(text string, consumed []span) (weightValue, bool) {
	if w, _, ok := firstMatch(text, weightRules); ok {
		return w, true
	}
	for _, m := range bareNumber.FindAllStringSubmatchIndex(text, -1) {
		num := groupSpan(m, 1)
		if !bareWeightCandidate(text, num, consumed) {
			continue
		}
		value, _ := atoi(group(text, m, 1))
		switch {
		case value >= minBareKG && value <= maxBareKG:
			return weightValue{kg: float64(value), unit: "kg"}, true
		case value >= minBareLB && value <= maxBareLB:
			return weightValue{kg: roundWhole(LbsToKg(float64(value))), unit: "lb"}, true
		}
	}
	return weightValue{}, false
}

func bareWeightCandidate(text string, num span, consumed []span) bool {
	for _, s := range consumed {
		if s.contains(num.start) {
			return false
		}
	}
	if partOfDecimal(text, num) {
		return false
	}
	switch byteBefore(text, num.start) {
	case '\'', '-', '/':
		return false
	}
	pre, post := window(text, num, 10, 10)
	if nonWeightSuffix.MatchString(post) {
		return false
	}
	pre, post = sameClause(pre, post)
	if heightIndicator.MatchString(pre) || heightIndicator.MatchString(post) {
		return false
	}
	lead, _ := window(text, num, 30, 0)
	return !targetLeadIn.MatchString(lead)
}
