package suggest

import "github.com/mvasiljevic/lifehub/internal/training/exercises"

const (
	SessionA = "A" // strength + power, lower-body heavy
	SessionB = "B" // upper + core
	SessionC = "C" // conditioning, WOD-generated
)

// sessionTemplates maps a session label to the movement patterns its
// exercise list draws from. Session C has no fixed template, the WOD
// generator assembles it.
var sessionTemplates = map[string][]exercises.MovementPattern{
	SessionA: {
		exercises.PatternHipHinge,
		exercises.PatternSquat,
		exercises.PatternPull,
		exercises.PatternAntiRotation,
		exercises.PatternHipExtension,
	},
	SessionB: {
		exercises.PatternPush,
		exercises.PatternPull,
		exercises.PatternCarry,
		exercises.PatternAntiExtension,
	},
}
