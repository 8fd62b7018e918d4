package services

import (
	"strings"

	"github.com/saeid-a/CoachIntake/internal/models"
)

type MissingField struct {
	Field   string `json:"field"`
	Example string `json:"example"`
}

type Readiness struct {
	Missing []MissingField `json:"missing"`
	Ready   bool           `json:"ready"`
	Prompt  string         `json:"prompt,omitempty"`
}

var requiredFields = []struct {
	field   string
	example string
	present func(models.ProfileRecord) bool
}{
	{"age", "age (e.g., 25 years old)", func(r models.ProfileRecord) bool { return r.Age != nil }},
	{"gender", "gender (e.g., male or female)", func(r models.ProfileRecord) bool { return r.Gender != nil }},
	{"height", `height (e.g., 175 cm or 5'9")`, func(r models.ProfileRecord) bool { return r.HeightCM != nil }},
	{"weight", "weight (e.g., 70 kg or 154 lbs)", func(r models.ProfileRecord) bool { return r.WeightKG != nil }},
	{"goal", "goal (e.g., lose weight, build muscle)", func(r models.ProfileRecord) bool { return r.Goal != nil }},
}

// CheckReadiness lists the required fields the record still lacks, in a fixed
// order, and builds the question to ask the user about them.
func CheckReadiness(record models.ProfileRecord) Readiness {
	missing := make([]MissingField, 0, len(requiredFields))
	for _, f := range requiredFields {
		if !f.present(record) {
			missing = append(missing, MissingField{Field: f.field, Example: f.example})
		}
	}
	if len(missing) == 0 {
		return Readiness{Missing: missing, Ready: true}
	}
	return Readiness{Missing: missing, Prompt: clarificationPrompt(missing)}
}

func clarificationPrompt(missing []MissingField) string {
	parts := make([]string, len(missing))
	for i, m := range missing {
		parts[i] = m.Example
	}
	var list string
	switch len(parts) {
	case 1:
		list = parts[0]
	default:
		list = strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
	return "Please share your " + list + "."
}

func missingFieldNames(missing []MissingField) []string {
	names := make([]string, len(missing))
	for i, m := range missing {
		names[i] = m.Field
	}
	return names
}

// ResolveGoal fills an absent goal from the target weight: a lower target
// means weight_loss, a higher one weight_gain. The record is returned as is
// when the goal is already set or the weights are equal or unknown.
func ResolveGoal(record models.ProfileRecord) models.ProfileRecord {
	if record.Goal != nil || record.WeightKG == nil || record.TargetWeight == nil {
		return record
	}
	var goal string
	switch {
	case record.TargetWeight.Value < *record.WeightKG:
		goal = models.GoalWeightLoss
	case record.TargetWeight.Value > *record.WeightKG:
		goal = models.GoalWeightGain
	default:
		return record
	}
	record.Goal = &goal
	return record
}
