package overload

import (
	"fmt"

	"github.com/mvasiljevic/lifehub/internal/training/exercises"
	"github.com/mvasiljevic/lifehub/internal/training/running"
	"github.com/mvasiljevic/lifehub/internal/training/sessions"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

type Config struct {
	DeloadRPE          float64
	HoldRPE            float64
	ProgressRPE        float64
	LowRecoveryScore   float64
	MinKidWeekSets     int
	DefaultRPE         float64
	HighConfidenceSize int
	MedConfidenceSize  int
}

func DefaultConfig() Config {
	return Config{
		DeloadRPE:          8.5,
		HoldRPE:            8.0,
		ProgressRPE:        7.0,
		LowRecoveryScore:   3,
		MinKidWeekSets:     2,
		DefaultRPE:         7,
		HighConfidenceSize: 4,
		MedConfidenceSize:  2,
	}
}

// Context is everything the advisor consults for one exercise.
type Context struct {
	Exercise exercises.Exercise
	// History holds the most recent performances, newest first.
	History       []sessions.HistoryEntry
	WeekType      sessions.WeekType
	LoadLevel     running.LoadLevel
	RecoveryScore *float64
}

type Suggestion struct {
	Weight     float64    `json:"weight"`
	Sets       *int       `json:"sets,omitempty"`
	Reps       *int       `json:"reps,omitempty"`
	Confidence Confidence `json:"confidence"`
	Rationale  string     `json:"rationale"`
}

// ruleInput is the precomputed view of a Context that the rules match
// against.
type ruleInput struct {
	ctx        Context
	lastWeight float64
	lastSets   int
	lastReps   *int
	avgRPE     float64
	hasWeights bool
	increment  float64
	confidence Confidence
}

type rule struct {
	name    string
	applies func(in ruleInput) bool
	apply   func(in ruleInput) Suggestion
}

type Advisor struct {
	cfg Config
	// ordered, first match wins
	rules []rule
}

func NewAdvisor(cfg Config) *Advisor {
	a := &Advisor{cfg: cfg}
	a.rules = []rule{
		{
			name:    "no-history",
			applies: func(in ruleInput) bool { return len(in.ctx.History) == 0 },
			apply: func(in ruleInput) Suggestion {
				return a.prescribe(in, "no history for this exercise, start light")
			},
		},
		{
			name:    "no-weight-history",
			applies: func(in ruleInput) bool { return !in.hasWeights },
			apply: func(in ruleInput) Suggestion {
				return a.prescribe(in, "no weight history for this exercise, start light")
			},
		},
		{
			name: "deload",
			applies: func(in ruleInput) bool {
				return in.avgRPE > cfg.DeloadRPE || a.lowRecovery(in.ctx)
			},
			apply: func(in ruleInput) Suggestion {
				weight := in.lastWeight - in.increment
				if weight < 0 {
					weight = 0
				}
				// low recovery takes message precedence when both apply
				rationale := fmt.Sprintf("recent avg RPE %.1f too high, deload", in.avgRPE)
				if a.lowRecovery(in.ctx) {
					rationale = fmt.Sprintf("recovery score %.1f is low, deload", *in.ctx.RecoveryScore)
				}
				return Suggestion{
					Weight:     weight,
					Sets:       a.setsFor(in),
					Reps:       in.lastReps,
					Confidence: in.confidence,
					Rationale:  rationale,
				}
			},
		},
		{
			name: "hold-hard-or-high-load",
			applies: func(in ruleInput) bool {
				return in.avgRPE > cfg.HoldRPE || in.ctx.LoadLevel == running.LoadLevelHigh
			},
			apply: func(in ruleInput) Suggestion {
				rationale := fmt.Sprintf("recent avg RPE %.1f, hold weight", in.avgRPE)
				if in.ctx.LoadLevel == running.LoadLevelHigh {
					rationale = "running load is high, hold weight until it settles"
				}
				return Suggestion{
					Weight:     in.lastWeight,
					Sets:       a.setsFor(in),
					Reps:       in.lastReps,
					Confidence: in.confidence,
					Rationale:  rationale,
				}
			},
		},
		{
			name:    "kid-week",
			applies: func(in ruleInput) bool { return in.ctx.WeekType.IsKid() },
			apply: func(in ruleInput) Suggestion {
				return Suggestion{
					Weight:     in.lastWeight,
					Sets:       a.setsFor(in),
					Reps:       in.lastReps,
					Confidence: in.confidence,
					Rationale:  "kid week: maintain weight, reduced sets",
				}
			},
		},
		{
			name:    "progress",
			applies: func(in ruleInput) bool { return in.avgRPE < cfg.ProgressRPE },
			apply: func(in ruleInput) Suggestion {
				return Suggestion{
					Weight:     in.lastWeight + in.increment,
					Sets:       a.setsFor(in),
					Reps:       in.lastReps,
					Confidence: in.confidence,
					Rationale: fmt.Sprintf(
						"avg RPE %.1f with %s running load, progress by %.1f kg",
						in.avgRPE, in.ctx.LoadLevel, in.increment,
					),
				}
			},
		},
		{
			name:    "on-track",
			applies: func(in ruleInput) bool { return true },
			apply: func(in ruleInput) Suggestion {
				return Suggestion{
					Weight:     in.lastWeight,
					Sets:       a.setsFor(in),
					Reps:       in.lastReps,
					Confidence: in.confidence,
					Rationale:  "on track, hold weight and sets",
				}
			},
		},
	}
	return a
}

// Suggest runs the rule list over the exercise context, first matching
// rule wins.
func (a *Advisor) Suggest(ctx Context) Suggestion {
	in := a.precompute(ctx)
	for _, r := range a.rules {
		if r.applies(in) {
			return r.apply(in)
		}
	}
	// the last rule always applies, never reached
	return Suggestion{}
}

// ReentryAdjust pulls one increment off a positive suggestion, applied
// by the session engine after a training gap.
func (a *Advisor) ReentryAdjust(exercise exercises.Exercise, s Suggestion) Suggestion {
	if s.Weight <= 0 {
		return s
	}
	s.Weight -= IncrementFor(exercise)
	if s.Weight < 0 {
		s.Weight = 0
	}
	s.Rationale += "; reduced after the training gap"
	return s
}

func (a *Advisor) precompute(ctx Context) ruleInput {
	in := ruleInput{
		ctx:       ctx,
		increment: IncrementFor(ctx.Exercise),
	}

	switch {
	case len(ctx.History) >= a.cfg.HighConfidenceSize:
		in.confidence = ConfidenceHigh
	case len(ctx.History) >= a.cfg.MedConfidenceSize:
		in.confidence = ConfidenceMedium
	default:
		in.confidence = ConfidenceLow
	}

	var rpeSum float64
	var rpeCount int
	for _, entry := range ctx.History {
		for _, set := range entry.Sets {
			if set.RPE != nil {
				rpeSum += *set.RPE
				rpeCount++
			}
		}
	}
	in.avgRPE = a.cfg.DefaultRPE
	if rpeCount > 0 {
		in.avgRPE = rpeSum / float64(rpeCount)
	}

	in.lastWeight = LastWorkingWeight(ctx.History)
	in.hasWeights = in.lastWeight > 0

	for _, entry := range ctx.History {
		if len(entry.Sets) == 0 {
			continue
		}
		in.lastSets = len(entry.Sets)
		if entry.Sets[0].Reps != nil {
			reps := *entry.Sets[0].Reps
			in.lastReps = &reps
		}
		break
	}

	return in
}

func (a *Advisor) prescribe(in ruleInput, rationale string) Suggestion {
	p := prescriptionFor(in.ctx.Exercise.Category)
	sets, reps := p.sets, p.reps
	return Suggestion{
		Weight:     0,
		Sets:       &sets,
		Reps:       &reps,
		Confidence: ConfidenceLow,
		Rationale:  rationale,
	}
}

// setsFor keeps the last logged set count, trimmed by one on kid weeks
// but never below the configured minimum.
func (a *Advisor) setsFor(in ruleInput) *int {
	sets := in.lastSets
	if sets == 0 {
		return nil
	}
	if in.ctx.WeekType.IsKid() {
		sets--
		if sets < a.cfg.MinKidWeekSets {
			sets = a.cfg.MinKidWeekSets
		}
	}
	return &sets
}

func (a *Advisor) lowRecovery(ctx Context) bool {
	return ctx.RecoveryScore != nil && *ctx.RecoveryScore < a.cfg.LowRecoveryScore
}

// LastWorkingWeight finds the heaviest weight of the most recent
// performance that recorded any weighted set.
func LastWorkingWeight(history []sessions.HistoryEntry) float64 {
	for _, entry := range history {
		var maxWeight float64
		for _, set := range entry.Sets {
			if set.Weight != nil && *set.Weight > maxWeight {
				maxWeight = *set.Weight
			}
		}
		if maxWeight > 0 {
			return maxWeight
		}
	}
	return 0
}
