package suggest

import (
	"context"
	"fmt"

	"github.com/mvasiljevic/lifehub/internal/training/exercises"
	"github.com/mvasiljevic/lifehub/internal/training/running"
	"github.com/mvasiljevic/lifehub/internal/training/sessions"
)

type WOD struct {
	Name        string `json:"name"`
	Format      string `json:"format"`
	Duration    *int   `json:"duration,omitempty"`
	Description string `json:"description"`
}

type wodTemplate struct {
	name        string
	format      string
	durationMin *int
	slots       int
	// time-based formats carry no set/rep prescription
	timeBased   bool
	description string
}

func minutes(m int) *int {
	return &m
}

var wodTemplates = []wodTemplate{
	{
		name:        "AMRAP 15",
		format:      "amrap",
		durationMin: minutes(15),
		slots:       3,
		description: "as many rounds as possible in 15 minutes",
	},
	{
		name:        "EMOM 20",
		format:      "emom",
		durationMin: minutes(20),
		slots:       2,
		description: "every minute on the minute for 20 minutes, alternating exercises",
	},
	{
		name:        "21-15-9",
		format:      "fortime",
		slots:       2,
		description: "21, 15 and 9 reps of each, for time",
	},
	{
		name:        "Tabata x4",
		format:      "tabata",
		durationMin: minutes(16),
		slots:       4,
		timeBased:   true,
		description: "8 rounds of 20s work / 10s rest per exercise",
	},
	{
		name:        "5 Rounds For Time",
		format:      "fortime",
		slots:       3,
		description: "5 rounds of all exercises, for time",
	},
}

// wodExercisePool is the catalog filter for conditioning candidates.
func wodExercisePool(equipment []string) exercises.ListParams {
	return exercises.ListParams{
		Categories: []exercises.Category{exercises.CategoryConditioning},
		Patterns: []exercises.MovementPattern{
			exercises.PatternCompound,
			exercises.PatternSquat,
			exercises.PatternHipHinge,
			exercises.PatternCardio,
		},
		Equipment: equipment,
	}
}

// eligibleWODTemplates trims the template table to formats short enough
// for the current state. For-time formats have no fixed duration and
// always stay eligible.
func (e *Engine) eligibleWODTemplates(
	weekType sessions.WeekType,
	loadLevel running.LoadLevel,
	reentry bool,
) []wodTemplate {
	maxMinutes := 0
	if loadLevel == running.LoadLevelHigh || reentry {
		maxMinutes = e.cfg.HighLoadMaxWODMinutes
	}
	if weekType.IsKid() && (maxMinutes == 0 || e.cfg.KidWeekMaxWODMinutes < maxMinutes) {
		maxMinutes = e.cfg.KidWeekMaxWODMinutes
	}

	if maxMinutes == 0 {
		return wodTemplates
	}

	var eligible []wodTemplate
	for _, template := range wodTemplates {
		if template.durationMin == nil || *template.durationMin <= maxMinutes {
			eligible = append(eligible, template)
		}
	}
	return eligible
}

func (e *Engine) generateWOD(
	ctx context.Context,
	weekType sessions.WeekType,
	loadContext *running.LoadContext,
	reentry bool,
	equipment []string,
	recoveryScore *float64,
) (*WOD, []ExerciseSuggestion, error) {
	pool, err := e.exercises.List(ctx, wodExercisePool(equipment))
	if err != nil {
		return nil, nil, fmt.Errorf("list wod candidates: %w", err)
	}

	eligible := e.eligibleWODTemplates(weekType, loadContext.Level, reentry)

	e.randMu.Lock()
	e.Rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	template := eligible[e.Rand.Intn(len(eligible))]
	e.randMu.Unlock()

	picked := pool
	if len(picked) > template.slots {
		picked = picked[:template.slots]
	}

	suggestions, err := e.adviseExercises(ctx, picked, weekType, loadContext, reentry, recoveryScore)
	if err != nil {
		return nil, nil, err
	}

	if template.timeBased {
		for i := range suggestions {
			suggestions[i].SuggestedSets = nil
			suggestions[i].SuggestedReps = nil
		}
	}

	wod := &WOD{
		Name:        template.name,
		Format:      template.format,
		Duration:    template.durationMin,
		Description: template.description,
	}
	return wod, suggestions, nil
}
