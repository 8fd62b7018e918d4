package models

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

const (
	GoalWeightLoss        = "weight_loss"
	GoalWeightGain        = "weight_gain"
	GoalMuscleGain        = "muscle_gain"
	GoalToning            = "toning"
	GoalWeightMaintenance = "weight_maintenance"
	GoalStrength          = "strength"
	GoalEndurance         = "endurance"
	GoalBodyRecomposition = "body_recomposition"
	GoalFitness           = "fitness"
)

const (
	ActivitySedentary        = "sedentary"
	ActivityLightlyActive    = "lightly active"
	ActivityModeratelyActive = "moderately active"
	ActivityVeryActive       = "very active"
	ActivityExtremelyActive  = "extremely active"
)

// Units records the normalized units of a ProfileRecord. Height and Weight are
// always metric; the *Input fields say what the text was written in.
type Units struct {
	Height      string `json:"height"`
	Weight      string `json:"weight"`
	HeightInput string `json:"height_input,omitempty"`
	WeightInput string `json:"weight_input,omitempty"`
}

func DefaultUnits() Units {
	return Units{Height: "cm", Weight: "kg"}
}

type Measurement struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// ProfileRecord is the structured result of parsing one free-form profile
// description. Nil fields were not found in the text.
type ProfileRecord struct {
	Age           *int         `json:"age"`
	Gender        *string      `json:"gender"`
	HeightCM      *float64     `json:"height_cm"`
	WeightKG      *float64     `json:"weight_kg"`
	Goal          *string      `json:"goal"`
	Activity      []string     `json:"activity"`
	Frequency     *int         `json:"frequency"`
	Units         Units        `json:"units"`
	ActivityLevel *string      `json:"activity_level"`
	TargetWeight  *Measurement `json:"target_weight"`
	WeightChange  *Measurement `json:"weight_change"`
	Timeline      *Measurement `json:"timeline"`
}

func NewProfileRecord() ProfileRecord {
	return ProfileRecord{
		Activity: []string{},
		Units:    DefaultUnits(),
	}
}
