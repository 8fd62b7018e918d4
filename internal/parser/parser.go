// Package parser extracts a structured fitness profile from a free-form
// self description such as "28M, 5'9\", 160 lbs, want to lose weight".
//
// Every field has its own ordered rule table. Fields are extracted
// independently over the same normalized text; the only coupling is that the
// bare-number weight fallback skips the text already used for age and height.
package parser

import (
	"github.com/saeid-a/CoachIntake/internal/models"
)

// Parser is the value form of Parse, for callers that take an interface.
type Parser struct{}

func (Parser) Parse(text string) models.ProfileRecord {
	return Parse(text)
}

// Parse never fails; fields it cannot find are left nil.
func Parse(text string) models.ProfileRecord {
	record := models.NewProfileRecord()
	text = normalize(text)
	if text == "" {
		return record
	}

	var consumed []span
	if age, s, ok := extractAge(text); ok {
		record.Age = &age
		consumed = append(consumed, s)
	}
	if gender, ok := extractGender(text); ok {
		record.Gender = &gender
	}
	if h, s, ok := extractHeight(text); ok {
		cm := h.cm
		record.HeightCM = &cm
		record.Units.HeightInput = h.unit
		consumed = append(consumed, s)
	}
	if w, ok := extractWeight(text, consumed); ok {
		kg := w.kg
		record.WeightKG = &kg
		record.Units.WeightInput = w.unit
	}
	if goal, ok := extractGoal(text); ok {
		record.Goal = &goal
	}
	record.Activity = extractActivities(text)
	if n, ok := extractFrequency(text); ok {
		record.Frequency = &n
	}
	if lvl, ok := extractActivityLevel(text, record.Frequency); ok {
		record.ActivityLevel = &lvl
	}
	record.TargetWeight, _ = extractTargetWeight(text)
	record.WeightChange, _ = extractWeightChange(text)
	record.Timeline, _ = extractTimeline(text)
	return record
}

// Merge layers next over prev: fields present in next win, activities are
// unioned in order. Neither input is modified and the result shares no
// pointers with them.
func Merge(prev, next models.ProfileRecord) models.ProfileRecord {
	out := models.NewProfileRecord()

	out.Age = pick(next.Age, prev.Age)
	out.Gender = pick(next.Gender, prev.Gender)
	out.Goal = pick(next.Goal, prev.Goal)
	out.Frequency = pick(next.Frequency, prev.Frequency)
	out.ActivityLevel = pick(next.ActivityLevel, prev.ActivityLevel)
	out.TargetWeight = pick(next.TargetWeight, prev.TargetWeight)
	out.WeightChange = pick(next.WeightChange, prev.WeightChange)
	out.Timeline = pick(next.Timeline, prev.Timeline)

	if next.HeightCM != nil {
		out.HeightCM = pick(next.HeightCM, nil)
		out.Units.HeightInput = next.Units.HeightInput
	} else if prev.HeightCM != nil {
		out.HeightCM = pick(prev.HeightCM, nil)
		out.Units.HeightInput = prev.Units.HeightInput
	}
	if next.WeightKG != nil {
		out.WeightKG = pick(next.WeightKG, nil)
		out.Units.WeightInput = next.Units.WeightInput
	} else if prev.WeightKG != nil {
		out.WeightKG = pick(prev.WeightKG, nil)
		out.Units.WeightInput = prev.Units.WeightInput
	}

	seen := make(map[string]bool)
	for _, list := range [][]string{prev.Activity, next.Activity} {
		for _, a := range list {
			if seen[a] {
				continue
			}
			seen[a] = true
			out.Activity = append(out.Activity, a)
		}
	}
	return out
}

func pick[T any](a, b *T) *T {
	if a == nil {
		a = b
	}
	if a == nil {
		return nil
	}
	v := *a
	return &v
}
