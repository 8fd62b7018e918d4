package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/saeid-a/CoachIntake/internal/models"
)

var activityGroups = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:running|jogging|run|jog|sprinting|sprints)\b`),
	regexp.MustCompile(`\b(?:walking|walks)\b`),
	regexp.MustCompile(`\b(?:cycling|biking|spinning|spin\s+class(?:es)?)\b`),
	regexp.MustCompile(`\b(?:weight\s+lifting|weightlifting|lifting\s+weights|resistance\s+training|strength\s+training|powerlifting|lifting|weights|gym)\b`),
	regexp.MustCompile(`\b(?:yoga|pilates|stretching)\b`),
	regexp.MustCompile(`\b(?:swimming|swim)\b`),
	regexp.MustCompile(`\b(?:dancing|dance\s+workouts?|dance|zumba)\b`),
	regexp.MustCompile(`\b(?:kickboxing|boxing|martial\s+arts|mma|muay\s+thai|karate|judo|bjj)\b`),
	regexp.MustCompile(`\b(?:football|soccer|basketball|tennis|volleyball|badminton|cricket|rugby|hockey|sports?)\b`),
	regexp.MustCompile(`\b(?:hiit|crossfit|circuit\s+training|circuits|interval\s+training|intervals|tabata)\b`),
	regexp.MustCompile(`\b(?:calisthenics|bodyweight(?:\s+exercises)?|push-?ups|pull-?ups|home\s+workouts?)\b`),
	regexp.MustCompile(`\b(?:hiking|hikes|trekking)\b`),
}

type activityHit struct {
	pos int
	tag string
}

// extractActivities returns every activity literal in order of appearance,
// without duplicates.
func extractActivities(text string) []string {
	var hits []activityHit
	for _, group := range activityGroups {
		for _, loc := range group.FindAllStringIndex(text, -1) {
			hits = append(hits, activityHit{pos: loc[0], tag: text[loc[0]:loc[1]]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	tags := []string{}
	seen := make(map[string]bool)
	for _, h := range hits {
		key := strings.ToLower(h.tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, h.tag)
	}
	return tags
}

func level(value string) func(string, []int) (string, bool) {
	return func(string, []int) (string, bool) { return value, true }
}

var activityLevelRules = []rule[string]{
	{
		name:    "activity_sedentary",
		pattern: regexp.MustCompile(`\b(?:sedentary|inactive|desk\s+job|not\s+(?:very\s+|really\s+)?active|(?:don'?t|do\s+not|never)\s+(?:exercise|work\s*out)|couch\s+potato)\b`),
		accept:  level(models.ActivitySedentary),
	},
	{
		name:    "activity_extremely",
		pattern: regexp.MustCompile(`\b(?:extremely|super)\s+active\b|\bathlete\b`),
		accept:  level(models.ActivityExtremelyActive),
	},
	{
		name:    "activity_very",
		pattern: regexp.MustCompile(`\b(?:very|highly|quite)\s+active\b`),
		accept:  level(models.ActivityVeryActive),
	},
	{
		name:    "activity_moderately",
		pattern: regexp.MustCompile(`\bmoderate(?:ly)?\s+(?:active|exercise|activity)\b|\bfairly\s+active\b`),
		accept:  level(models.ActivityModeratelyActive),
	},
	{
		name:    "activity_lightly",
		pattern: regexp.MustCompile(`\b(?:lightly|somewhat|slightly)\s+active\b|\blight\s+(?:exercise|activity)\b`),
		accept:  level(models.ActivityLightlyActive),
	},
}

// extractActivityLevel prefers an explicit phrase and otherwise derives the
// level from the weekly workout count.
func extractActivityLevel(text string, frequency *int) (string, bool) {
	if lvl, _, ok := firstMatch(text, activityLevelRules); ok {
		return lvl, true
	}
	if frequency == nil {
		return "", false
	}
	switch f := *frequency; {
	case f <= 2:
		return models.ActivityLightlyActive, true
	case f <= 4:
		return models.ActivityModeratelyActive, true
	case f <= 6:
		return models.ActivityVeryActive, true
	default:
		return models.ActivityExtremelyActive, true
	}
}
