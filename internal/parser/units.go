package parser

import (
	"math"
	"regexp"
	"strings"
)

const (
	kgPerLb       = 0.45359237
	cmPerFt       = 30.48
	cmPerIn       = 2.54
	weeksPerMonth = 4
	weeksPerYear  = 52
)

// LbsToKg converts pounds to kilograms.
func LbsToKg(lbs float64) float64 {
	return lbs * kgPerLb
}

// KgToLbs converts kilograms to pounds.
func KgToLbs(kg float64) float64 {
	return kg / kgPerLb
}

// FeetInchesToCM converts an imperial height to whole centimeters.
func FeetInchesToCM(feet, inches float64) float64 {
	return math.Round(feet*cmPerFt + inches*cmPerIn)
}

func roundWhole(v float64) float64 {
	return math.Round(v)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func isPoundUnit(unit string) bool {
	return strings.HasPrefix(unit, "lb") || strings.HasPrefix(unit, "pound")
}

// toKG normalizes a weight value in the given unit. Pounds are rounded to
// whole kilograms; kilograms keep one decimal.
func toKG(value float64, unit string) (float64, string) {
	if isPoundUnit(unit) {
		return math.Round(LbsToKg(value)), "lb"
	}
	return roundTenth(value), "kg"
}

const weightUnit = `(kilogrammes?|kilograms?|kilos?|kgs?|pounds?|lbs?)`

var (
	// Any unit or marker that says a number is not a bare weight.
	nonWeightSuffix = regexp.MustCompile(`^\s*(?:kilo|kgs?\b|lbs?\b|pounds?\b|cms?\b|centimet|m\b|meters?\b|metres?\b|ft\b|feet\b|foot\b|in\b|inch|'|’|′|"|”|-?\s*years?\b|-?\s*yrs?\b|yo\b|y/o|y\.o|times\b|x\b|days?\b|weeks?\b|wks?\b|months?\b|mos?\b|%|kcal|cal\b|calories|steps|min\b|mins\b|minutes|hours?\b|hrs?\b|sets\b|reps\b|\.\d)`)
	// Markers that follow an age or a height-ish number.
	measurementSuffix = regexp.MustCompile(`^\s*(?:kilo|kgs?\b|lbs?\b|pounds?\b|cms?\b|centimet|m\b|meters?\b|metres?\b|ft\b|feet\b|foot\b|in\b|inch|'|’|′|"|”|%|\.\d)`)
	weightSuffix      = regexp.MustCompile(`^\s*(?:kilo|kgs?\b|lbs?\b|pounds?\b|days?\b|weeks?\b|months?\b|years?\b|times\b|x\b|%)`)
)
