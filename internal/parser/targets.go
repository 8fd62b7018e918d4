package parser

import (
	"math"
	"regexp"

	"github.com/saeid-a/CoachIntake/internal/models"
)

const (
	minWeightChangeKG = 0.5
	maxWeightChangeKG = 150
	minTimelineWeeks  = 1
	maxTimelineWeeks  = 520
)

var targetWeightRules = []rule[float64]{
	{
		name:    "target_weight_label",
		pattern: regexp.MustCompile(`\b(?:target|goal|ideal|desired|dream)\s+weight\s*(?:is|of|:|=|-)?\s*(?:about\s+|around\s+)?(\d{2,3}(?:\.\d{1,2})?)\s*` + weightUnit + `?\b`),
		accept:  acceptTargetWeight,
	},
	{
		name:    "target_weight_reach",
		pattern: regexp.MustCompile(`\b(?:reach(?:ing)?|get(?:ting)?\s+(?:down|up)\s+to|get\s+to|down\s+to|up\s+to|be)\s+(?:about\s+|around\s+)?(\d{2,3}(?:\.\d{1,2})?)\s*` + weightUnit + `\b`),
		accept:  acceptTargetWeight,
	},
}

// A target without a unit is read as kilograms.
func acceptTargetWeight(text string, m []int) (float64, bool) {
	if partOfDecimal(text, groupSpan(m, 1)) {
		return 0, false
	}
	value, ok := atof(group(text, m, 1))
	if !ok {
		return 0, false
	}
	kg, _ := toKG(value, group(text, m, 2))
	if kg < minExplicitWeightKG || kg > maxExplicitWeightKG {
		return 0, false
	}
	return kg, true
}

var weightChangeRules = []rule[float64]{
	{
		name:    "weight_change_loss",
		pattern: regexp.MustCompile(`\b(?:lose|losing|drop|dropping|shed|shedding|cut|cutting)\s+(?:about\s+|around\s+|another\s+)?(\d{1,3}(?:\.\d{1,2})?)\s*` + weightUnit + `\b`),
		accept: func(text string, m []int) (float64, bool) {
			kg, ok := acceptWeightChange(text, m)
			return -kg, ok
		},
	},
	{
		name:    "weight_change_gain",
		pattern: regexp.MustCompile(`\b(?:gain|gaining|put\s+on|putting\s+on|add|adding)\s+(?:about\s+|around\s+|another\s+)?(\d{1,3}(?:\.\d{1,2})?)\s*` + weightUnit + `\b`),
		accept:  acceptWeightChange,
	},
}

// Changes keep one decimal whatever the input unit.
func acceptWeightChange(text string, m []int) (float64, bool) {
	if partOfDecimal(text, groupSpan(m, 1)) {
		return 0, false
	}
	value, ok := atof(group(text, m, 1))
	if !ok {
		return 0, false
	}
	kg := value
	if isPoundUnit(group(text, m, 2)) {
		kg = LbsToKg(value)
	}
	kg = roundTenth(kg)
	if kg < minWeightChangeKG || kg > maxWeightChangeKG {
		return 0, false
	}
	return kg, true
}

var timelineRules = []rule[int]{
	{
		name:    "timeline_span",
		pattern: regexp.MustCompile(`\b(?:in|within|over|next|for)\s+(?:the\s+next\s+)?(?:about\s+|around\s+)?(\d{1,3}|one|two|three|four|five|six|seven)\s*(days?|weeks?|wks?|months?|mos?|years?|yrs?)\b`),
		accept: func(text string, m []int) (int, bool) {
			n, ok := atoi(group(text, m, 1))
			if !ok {
				return 0, false
			}
			weeks := toWeeks(n, group(text, m, 2))
			if weeks < minTimelineWeeks || weeks > maxTimelineWeeks {
				return 0, false
			}
			return weeks, true
		},
	},
	{
		name:    "timeline_by",
		pattern: regexp.MustCompile(`\b(\d{1,3}|one|two|three|four|five|six|seven)\s*(weeks?|wks?|months?|mos?)\s+(?:from\s+now|timeline|timeframe|time\s+frame|plan|program)\b`),
		accept: func(text string, m []int) (int, bool) {
			n, ok := atoi(group(text, m, 1))
			if !ok {
				return 0, false
			}
			weeks := toWeeks(n, group(text, m, 2))
			if weeks < minTimelineWeeks || weeks > maxTimelineWeeks {
				return 0, false
			}
			return weeks, true
		},
	},
}

func toWeeks(n int, unit string) int {
	switch unit[0] {
	case 'd':
		return int(math.Ceil(float64(n) / 7))
	case 'm':
		return n * weeksPerMonth
	case 'y':
		return n * weeksPerYear
	default:
		return n
	}
}

func extractTargetWeight(text string) (*models.Measurement, bool) {
	kg, _, ok := firstMatch(text, targetWeightRules)
	if !ok {
		return nil, false
	}
	return &models.Measurement{Value: kg, Unit: "kg"}, true
}

func extractWeightChange(text string) (*models.Measurement, bool) {
	kg, _, ok := firstMatch(text, weightChangeRules)
	if !ok {
		return nil, false
	}
	return &models.Measurement{Value: kg, Unit: "kg"}, true
}

func extractTimeline(text string) (*models.Measurement, bool) {
	weeks, _, ok := firstMatch(text, timelineRules)
	if !ok {
		return nil, false
	}
	return &models.Measurement{Value: float64(weeks), Unit: "weeks"}, true
}
