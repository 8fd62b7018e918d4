package parser

import (
	"regexp"
)

const (
	// Bounds for heights written with an explicit unit.
	minExplicitHeightCM = 120
	maxExplicitHeightCM = 250
	// Bounds for heights inferred from bare numbers.
	minInferredHeightCM = 140
	maxInferredHeightCM = 220
)

type heightValue struct {
	cm   float64
	unit string
}

var (
	followedByInches = regexp.MustCompile(`^\s*(?:and\s+)?\d{1,2}(?:\D|$)`)
	weightLeadIn     = regexp.MustCompile(`(?:weigh|kg|lbs|pounds)`)
)

var heightRules = []rule[heightValue]{
	{
		name:    "height_feet_inches",
		pattern: regexp.MustCompile(`\b(\d)\s*(?:'|’|′|ft|feet|foot)\.?\s*(?:and\s+)?(\d{1,2})\s*(?:"|”|″|′′|''|’’|in\b|inch(?:es)?\b)?`),
		accept: func(text string, m []int) (heightValue, bool) {
			if byteBefore(text, m[0]) == '.' {
				return heightValue{}, false
			}
			if m[1] < len(text) && isDigit(text[m[1]]) {
				return heightValue{}, false
			}
			feet, _ := atoi(group(text, m, 1))
			inches, _ := atoi(group(text, m, 2))
			if inches > 11 {
				return heightValue{}, false
			}
			return explicitHeight(FeetInchesToCM(float64(feet), float64(inches)), "ft_in")
		},
	},
	{
		name:    "height_decimal_feet",
		pattern: regexp.MustCompile(`\b(\d)\.(\d{1,3})\s*(?:'|’|′|ft\b|feet\b|foot\b)`),
		accept: func(text string, m []int) (heightValue, bool) {
			if byteBefore(text, m[0]) == '.' {
				return heightValue{}, false
			}
			cm, unit := decimalFeetToCM(group(text, m, 1), group(text, m, 2))
			return explicitHeight(cm, unit)
		},
	},
	{
		name:    "height_feet_only",
		pattern: regexp.MustCompile(`\b(\d)\s*(?:'|’|′|ft\b|feet\b|foot\b)`),
		accept: func(text string, m []int) (heightValue, bool) {
			if byteBefore(text, m[0]) == '.' {
				return heightValue{}, false
			}
			if followedByInches.MatchString(text[m[1]:]) {
				return heightValue{}, false
			}
			feet, _ := atoi(group(text, m, 1))
			return explicitHeight(FeetInchesToCM(float64(feet), 0), "ft")
		},
	},
	{
		name:    "height_centimeters",
		pattern: regexp.MustCompile(`\b(\d{2,3}(?:\.\d+)?)\s*(?:cms?|centimet(?:er|re)s?)\b`),
		accept: func(text string, m []int) (heightValue, bool) {
			value, ok := atof(group(text, m, 1))
			if !ok {
				return heightValue{}, false
			}
			return explicitHeight(roundWhole(value), "cm")
		},
	},
	{
		name:    "height_meters",
		pattern: regexp.MustCompile(`\b([12]\.\d{1,2})\s*(?:m|meters?|metres?)\b`),
		accept: func(text string, m []int) (heightValue, bool) {
			if byteBefore(text, m[0]) == '.' {
				return heightValue{}, false
			}
			value, ok := atof(group(text, m, 1))
			if !ok {
				return heightValue{}, false
			}
			return explicitHeight(roundWhole(value*100), "m")
		},
	},
	{
		name:    "height_bare_centimeters",
		pattern: regexp.MustCompile(`\b(\d{3})\b`),
		accept: func(text string, m []int) (heightValue, bool) {
			num := groupSpan(m, 1)
			if partOfDecimal(text, num) {
				return heightValue{}, false
			}
			pre, post := window(text, num, 10, 12)
			if weightLeadIn.MatchString(pre) || weightSuffix.MatchString(post) || measurementSuffix.MatchString(post) {
				return heightValue{}, false
			}
			value, _ := atoi(group(text, m, 1))
			return inferredHeight(float64(value), "cm")
		},
	},
	{
		name:    "height_bare_decimal_feet",
		pattern: regexp.MustCompile(`\b([4-7])\.(\d{1,2})\b`),
		accept: func(text string, m []int) (heightValue, bool) {
			if byteBefore(text, m[0]) == '.' {
				return heightValue{}, false
			}
			pre, post := window(text, span{start: m[0], end: m[1]}, 10, 12)
			if weightLeadIn.MatchString(pre) || nonWeightSuffix.MatchString(post) {
				return heightValue{}, false
			}
			cm, unit := decimalFeetToCM(group(text, m, 1), group(text, m, 2))
			return inferredHeight(cm, unit)
		},
	},
}

// decimalFeetToCM reads "5.10" as 5 ft 10 in when the fraction is one or two
// digits between 0 and 11, and as real decimal feet otherwise.
func decimalFeetToCM(whole, fraction string) (float64, string) {
	feet, _ := atoi(whole)
	if len(fraction) <= 2 {
		if inches, ok := atoi(fraction); ok && inches <= 11 {
			return FeetInchesToCM(float64(feet), float64(inches)), "ft_in"
		}
	}
	value, _ := atof(whole + "." + fraction)
	return roundWhole(value * cmPerFt), "ft"
}

func explicitHeight(cm float64, unit string) (heightValue, bool) {
	if cm < minExplicitHeightCM || cm > maxExplicitHeightCM {
		return heightValue{}, false
	}
	return heightValue{cm: cm, unit: unit}, true
}

func inferredHeight(cm float64, unit string) (heightValue, bool) {
	if cm < minInferredHeightCM || cm > maxInferredHeightCM {
		return heightValue{}, false
	}
	return heightValue{cm: cm, unit: unit}, true
}

func extractHeight(text string) (heightValue, span, bool) {
	return firstMatch(text, heightRules)
}
