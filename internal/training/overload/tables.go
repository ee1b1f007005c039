package overload

import "github.com/mvasiljevic/lifehub/internal/training/exercises"

// Lower-body hinge/squat patterns can take bigger jumps than the
// per-category steps below.
const lowerBodyIncrementKg = 2.5

var lowerBodyPatterns = map[exercises.MovementPattern]bool{
	exercises.PatternHipHinge:     true,
	exercises.PatternSquat:        true,
	exercises.PatternHipExtension: true,
}

var categoryIncrementsKg = map[exercises.Category]float64{
	exercises.CategoryPower:        2.5,
	exercises.CategoryStrength:     2.0,
	exercises.CategoryAccessory:    1.0,
	exercises.CategoryCore:         0,
	exercises.CategoryWarmup:       0,
	exercises.CategoryConditioning: 0,
}

const fallbackIncrementKg = 1.25

type prescription struct {
	sets int
	reps int
}

var categoryPrescriptions = map[exercises.Category]prescription{
	exercises.CategoryPower:     {sets: 4, reps: 5},
	exercises.CategoryStrength:  {sets: 4, reps: 6},
	exercises.CategoryAccessory: {sets: 3, reps: 10},
	exercises.CategoryCore:      {sets: 3, reps: 12},
}

var fallbackPrescription = prescription{sets: 3, reps: 8}

// IncrementFor returns the weight step for one progression of the
// given exercise.
func IncrementFor(exercise exercises.Exercise) float64 {
	if lowerBodyPatterns[exercise.Pattern()] {
		return lowerBodyIncrementKg
	}
	if increment, ok := categoryIncrementsKg[exercise.Category]; ok {
		return increment
	}
	return fallbackIncrementKg
}

func prescriptionFor(category exercises.Category) prescription {
	if p, ok := categoryPrescriptions[category]; ok {
		return p
	}
	return fallbackPrescription
}
