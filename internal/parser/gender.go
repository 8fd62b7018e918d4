package parser

import (
	"regexp"
	"strings"

	"github.com/saeid-a/CoachIntake/internal/models"
)

var genderWords = map[string]string{
	"m":         models.GenderMale,
	"male":      models.GenderMale,
	"man":       models.GenderMale,
	"boy":       models.GenderMale,
	"guy":       models.GenderMale,
	"dude":      models.GenderMale,
	"gentleman": models.GenderMale,
	"father":    models.GenderMale,
	"dad":       models.GenderMale,
	"f":         models.GenderFemale,
	"female":    models.GenderFemale,
	"woman":     models.GenderFemale,
	"girl":      models.GenderFemale,
	"lady":      models.GenderFemale,
	"gal":       models.GenderFemale,
	"mother":    models.GenderFemale,
	"mom":       models.GenderFemale,
	"mum":       models.GenderFemale,
}

var genderRules = []rule[string]{
	{
		name:    "gender_age_suffix",
		pattern: regexp.MustCompile(`\b(\d{2})([mf])\b`),
		accept: func(text string, m []int) (string, bool) {
			if partOfDecimal(text, groupSpan(m, 1)) {
				return "", false
			}
			gender, ok := genderWords[group(text, m, 2)]
			return gender, ok
		},
	},
	{
		name:    "gender_age_prefix",
		pattern: regexp.MustCompile(`\b([mf])\d{2}\b`),
		accept:  acceptGenderWord,
	},
	{
		name:    "gender_word",
		pattern: regexp.MustCompile(`\b(male|female|man|woman|boy|girl)\b`),
		accept:  acceptGenderWord,
	},
	{
		name:    "gender_letter",
		pattern: regexp.MustCompile(`\b([mf])\b`),
		accept: func(text string, m []int) (string, bool) {
			letter := groupSpan(m, 1)
			prev := byteBefore(text, letter.start)
			switch prev {
			case '\'', '.', '/', '-':
				return "", false
			}
			// "5 f", "1.75 m" and similar are units, not a gender.
			pre, _ := window(text, letter, 3, 0)
			if strings.HasSuffix(pre, "’") {
				return "", false
			}
			for i := len(pre) - 1; i >= 0; i-- {
				if pre[i] == ' ' {
					continue
				}
				if isDigit(pre[i]) {
					return "", false
				}
				break
			}
			if letter.end < len(text) && text[letter.end] == '.' {
				return "", false
			}
			return acceptGenderWord(text, m)
		},
	},
	{
		name:    "gender_label",
		pattern: regexp.MustCompile(`\b(?:gender|sex)\s*(?:is|:|=|-)?\s*(male|female|man|woman|m|f)\b`),
		accept:  acceptGenderWord,
	},
	{
		name:    "gender_i_am",
		pattern: regexp.MustCompile(`\bi\s*(?:am|'m|’m)\s+an?\s+(?:[a-z]+\s+)?(guy|dude|gentleman|father|dad|lady|gal|mother|mom|mum)\b`),
		accept:  acceptGenderWord,
	},
}

func acceptGenderWord(text string, m []int) (string, bool) {
	gender, ok := genderWords[group(text, m, 1)]
	return gender, ok
}

func extractGender(text string) (string, bool) {
	gender, _, ok := firstMatch(text, genderRules)
	return gender, ok
}
