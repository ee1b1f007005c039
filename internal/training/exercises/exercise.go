package exercises

type Category string

const (
	CategoryPower        Category = "power"
	CategoryStrength     Category = "strength"
	CategoryAccessory    Category = "accessory"
	CategoryCore         Category = "core"
	CategoryWarmup       Category = "warmup"
	CategoryConditioning Category = "conditioning"
)

type MovementPattern string

const (
	PatternHipHinge      MovementPattern = "hip_hinge"
	PatternSquat         MovementPattern = "squat"
	PatternPush          MovementPattern = "push"
	PatternPull          MovementPattern = "pull"
	PatternCarry         MovementPattern = "carry"
	PatternAntiRotation  MovementPattern = "anti_rotation"
	PatternAntiExtension MovementPattern = "anti_extension"
	PatternHipExtension  MovementPattern = "hip_extension"
	PatternCompound      MovementPattern = "compound"
	PatternCardio        MovementPattern = "cardio"
)

// Exercise is seeded reference data, read-only at runtime.
type Exercise struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	Category        Category         `json:"category"`
	MovementPattern *MovementPattern `json:"movementPattern,omitempty"`
	Equipment       []string         `json:"equipment,omitempty"`
	Muscles         []string         `json:"muscles,omitempty"`
}

func (e Exercise) Pattern() MovementPattern {
	if e.MovementPattern == nil {
		return ""
	}
	return *e.MovementPattern
}
