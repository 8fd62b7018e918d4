package parser

import (
	"regexp"
	"strings"

	"github.com/saeid-a/CoachIntake/internal/models"
)

// goalRule is one step of the goal chain. Steps are evaluated in order and the
// first one whose match reports true decides the goal.
type goalRule struct {
	name  string
	goal  string
	match func(text string) bool
}

func matches(patterns ...*regexp.Regexp) func(string) bool {
	return func(text string) bool {
		for _, p := range patterns {
			if p.MatchString(text) {
				return true
			}
		}
		return false
	}
}

func all(patterns ...*regexp.Regexp) func(string) bool {
	return func(text string) bool {
		for _, p := range patterns {
			if !p.MatchString(text) {
				return false
			}
		}
		return true
	}
}

var (
	weightGainPhrase = regexp.MustCompile(`\b(?:gain(?:ing)?\s+(?:some\s+|more\s+)?weight|weight\s+gain|put(?:ting)?\s+on\s+(?:some\s+|more\s+)?weight|increase\s+(?:my\s+)?(?:body\s+)?weight|get\s+heavier|gain(?:ing)?\s+\d+(?:\.\d+)?\s*(?:kgs?|kilos?|lbs?|pounds?)|too\s+(?:skinny|thin)|underweight)\b`)

	weightLossPhrase = regexp.MustCompile(`\b(?:los(?:e|ing)\s+(?:some\s+|more\s+|the\s+|my\s+)?(?:weight|fat|belly|pounds|kilos|kgs?|lbs)|los(?:e|ing)\s+\d+(?:\.\d+)?\s*(?:kgs?|kilos?|lbs?|pounds?)|weight\s*loss|fat\s*loss|fat\s+reduction|reduce\s+(?:my\s+)?(?:body\s+|belly\s+)?fat|burn(?:ing)?\s+(?:some\s+)?(?:body\s+)?fat|shed(?:ding)?\s+(?:some\s+)?(?:weight|fat|pounds|kilos|\d+)|drop(?:ping)?\s+(?:some\s+)?(?:weight|fat|pounds|kilos|\d+)|get\s+rid\s+of\s+(?:\w+\s+)?fat|overweight|too\s+(?:fat|heavy))\b`)
	cutWord          = regexp.MustCompile(`\bcut(?:ting)?\b`)
	fatOrWeight      = regexp.MustCompile(`\b(?:fat|weight)\b`)
	slimWord         = regexp.MustCompile(`\bslim(?:mer|ming)?\b`)
	muscleWord       = regexp.MustCompile(`\bmuscles?\b`)

	muscleGainPhrase = regexp.MustCompile(`\b(?:build(?:ing)?\s+(?:some\s+|more\s+|lean\s+)?muscles?|gain(?:ing)?\s+(?:some\s+|more\s+|lean\s+)?muscles?|muscle\s+(?:gain|mass|building|growth)|lean\s+muscle|bulk(?:ing)?(?:\s+up)?|(?:want|wanna|need)\s+(?:more\s+|some\s+|bigger\s+)?muscles?|get\s+(?:bigger|huge|jacked|buff|swole)|hypertrophy|body\s*building)\b`)

	toningPhrase = regexp.MustCompile(`\b(?:ton(?:e|ed|ing)(?:\s+up)?|muscle\s+tone|definition|define|defined|sculpt(?:ed|ing)?|firm(?:\s+up|er)?|lean\s+out)\b`)

	maintainVerb = regexp.MustCompile(`\b(?:maintain(?:ing)?|maintenance|keep|stay(?:ing)?|sustain|preserve)\b`)
	maintainNoun = regexp.MustCompile(`\b(?:weight|fitness|shape|physique|figure|current|fit)\b`)

	strengthPhrase  = regexp.MustCompile(`\b(?:strength|stronger|get\s+strong|powerlift(?:ing)?|lift\s+heavier)\b`)
	endurancePhrase = regexp.MustCompile(`\b(?:endurance|stamina|cardio(?:vascular)?|marathon|aerobic|run\s+(?:longer|faster)|\d+k\s+run)\b`)
	recompPhrase    = regexp.MustCompile(`\b(?:recomp(?:osition)?|body\s+recomp\w*)\b`)

	healthNoun = regexp.MustCompile(`\b(?:fitness|fit|health|healthy|healthier|shape|wellness|conditioning)\b`)
	intentVerb = regexp.MustCompile(`\b(?:improve|get|become|be|boost|better|enhance|increase|work\s+on|want|wanna|need)\b`)

	goalLabel      = regexp.MustCompile(`\b(?:goal|aim|objective)s?\s*(?:is|:|=|-)\s*(?:to\s+)?([a-z][a-z\s-]*)`)
	colloquialGoal = regexp.MustCompile(`\b(?:want|wanna|need|would\s+like|trying|try|hoping|hope|looking|planning|plan|going)\s+(?:to\s+)?(?:get\s+)?(bulk|lose|slim|shred|cut|tone|toned|strong|stronger|lift)\b`)
)

var goalRules = []goalRule{
	{name: "goal_weight_gain", goal: models.GoalWeightGain, match: matches(weightGainPhrase)},
	{
		name:  "goal_weight_loss",
		goal:  models.GoalWeightLoss,
		match: func(text string) bool {
			if weightLossPhrase.MatchString(text) {
				return true
			}
			if cutWord.MatchString(text) && fatOrWeight.MatchString(text) {
				return true
			}
			return slimWord.MatchString(text) && !muscleWord.MatchString(text)
		},
	},
	{name: "goal_muscle_gain", goal: models.GoalMuscleGain, match: matches(muscleGainPhrase)},
	{
		name:  "goal_toning",
		goal:  models.GoalToning,
		match: func(text string) bool {
			return toningPhrase.MatchString(text) || slimWord.MatchString(text)
		},
	},
	{name: "goal_maintenance", goal: models.GoalWeightMaintenance, match: all(maintainVerb, maintainNoun)},
	{name: "goal_strength", goal: models.GoalStrength, match: matches(strengthPhrase)},
	{name: "goal_endurance", goal: models.GoalEndurance, match: matches(endurancePhrase)},
	{name: "goal_recomposition", goal: models.GoalBodyRecomposition, match: matches(recompPhrase)},
	{name: "goal_fitness", goal: models.GoalFitness, match: all(healthNoun, intentVerb)},
}

// labelGoals maps text after "goal:" by containment; order matters.
var labelGoals = []struct {
	keywords []string
	goal     string
}{
	{[]string{"recomp"}, models.GoalBodyRecomposition},
	{[]string{"maint"}, models.GoalWeightMaintenance},
	{[]string{"bulk", "muscle", "mass"}, models.GoalMuscleGain},
	{[]string{"gain"}, models.GoalWeightGain},
	{[]string{"fat", "loss", "lose", "slim", "cut", "shred"}, models.GoalWeightLoss},
	{[]string{"ton"}, models.GoalToning},
	{[]string{"strength", "strong"}, models.GoalStrength},
	{[]string{"endur", "cardio", "stamina"}, models.GoalEndurance},
	{[]string{"fit", "health"}, models.GoalFitness},
}

var colloquialGoals = map[string]string{
	"bulk":     models.GoalMuscleGain,
	"lose":     models.GoalWeightLoss,
	"slim":     models.GoalWeightLoss,
	"shred":    models.GoalWeightLoss,
	"cut":      models.GoalWeightLoss,
	"tone":     models.GoalToning,
	"toned":    models.GoalToning,
	"strong":   models.GoalStrength,
	"stronger": models.GoalStrength,
	"lift":     models.GoalStrength,
}

func extractGoal(text string) (string, bool) {
	for _, r := range goalRules {
		if r.match(text) {
			return r.goal, true
		}
	}
	if goal, ok := labelGoal(text); ok {
		return goal, true
	}
	if m := colloquialGoal.FindStringSubmatch(text); m != nil {
		return colloquialGoals[m[1]], true
	}
	return "", false
}

func labelGoal(text string) (string, bool) {
	m := goalLabel.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	label := strings.TrimSpace(m[1])
	for _, entry := range labelGoals {
		for _, kw := range entry.keywords {
			if strings.Contains(label, kw) {
				return entry.goal, true
			}
		}
	}
	return "", false
}
