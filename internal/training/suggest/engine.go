package suggest

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/mvasiljevic/lifehub/internal/telemetry/tracing"
	"github.com/mvasiljevic/lifehub/internal/training/exercises"
	"github.com/mvasiljevic/lifehub/internal/training/overload"
	"github.com/mvasiljevic/lifehub/internal/training/recovery"
	"github.com/mvasiljevic/lifehub/internal/training/running"
	"github.com/mvasiljevic/lifehub/internal/training/sessions"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=suggest_mocks_test.go -package=suggest_test

type exercisesLister interface {
	List(ctx context.Context, params exercises.ListParams) ([]exercises.Exercise, error)
}

type sessionsStore interface {
	Last(ctx context.Context) (*sessions.Session, error)
	HistoryForExercises(ctx context.Context, exerciseIDs []int, perExercise int) (map[int][]sessions.HistoryEntry, error)
	Frequency(ctx context.Context, now time.Time) (*sessions.FrequencyStats, error)
}

type loadContexter interface {
	Context(ctx context.Context) (*running.LoadContext, error)
}

type recoveryStore interface {
	Latest(ctx context.Context) (*recovery.Checkin, error)
}

type Config struct {
	ReentryGapDays        int
	HistoryPerExercise    int
	TemplateExerciseLimit int
	HighLoadMaxWODMinutes int
	KidWeekMaxWODMinutes  int
}

func DefaultConfig() Config {
	return Config{
		ReentryGapDays:        5,
		HistoryPerExercise:    5,
		TemplateExerciseLimit: 6,
		HighLoadMaxWODMinutes: 16,
		KidWeekMaxWODMinutes:  15,
	}
}

type Params struct {
	WeekType  *sessions.WeekType
	Equipment []string
}

type ExerciseSuggestion struct {
	Name            string              `json:"name"`
	ExerciseID      int                 `json:"exerciseId"`
	SuggestedWeight float64             `json:"suggestedWeight"`
	SuggestedSets   *int                `json:"suggestedSets,omitempty"`
	SuggestedReps   *int                `json:"suggestedReps,omitempty"`
	Confidence      overload.Confidence `json:"confidence,omitempty"`
	LastWeight      float64             `json:"lastWeight"`
	Rationale       string              `json:"rationale"`
}

type LastSessionInfo struct {
	Type    string    `json:"type"`
	Date    time.Time `json:"date"`
	DaysAgo int       `json:"daysAgo"`
}

type SessionSuggestion struct {
	RecommendedSession   string                   `json:"recommendedSession"`
	Rationale            string                   `json:"rationale"`
	WeekType             sessions.WeekType        `json:"weekType"`
	RunningLoadLast7Days int                      `json:"runningLoadLast7Days"`
	RunningContext       *running.LoadContext     `json:"runningContext"`
	Frequency            *sessions.FrequencyStats `json:"frequency"`
	LastSession          *LastSessionInfo         `json:"lastSession"`
	SuggestedExercises   []ExerciseSuggestion     `json:"suggestedExercises"`
	WOD                  *WOD                     `json:"wod,omitempty"`
}

type Engine struct {
	exercises exercisesLister
	sessions  sessionsStore
	runs      loadContexter
	recovery  recoveryStore
	advisor   *overload.Advisor
	cfg       Config

	// injectable clock and randomness for tests
	Now  func() time.Time
	Rand *rand.Rand

	// rand.Rand is not safe for concurrent use, suggestion requests
	// can land in parallel
	randMu sync.Mutex
}

func NewEngine(
	exercisesRepo exercisesLister,
	sessionsRepo sessionsStore,
	runsAnalyzer loadContexter,
	recoveryRepo recoveryStore,
	advisor *overload.Advisor,
	cfg Config,
) *Engine {
	return &Engine{
		exercises: exercisesRepo,
		sessions:  sessionsRepo,
		runs:      runsAnalyzer,
		recovery:  recoveryRepo,
		advisor:   advisor,
		cfg:       cfg,
		Now:       time.Now,
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Suggest decides the next session and assembles its exercise list.
func (e *Engine) Suggest(ctx context.Context, params Params) (_ *SessionSuggestion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "suggest.engine.suggest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := e.Now()

	lastSession, err := e.sessions.Last(ctx)
	if err != nil && !errors.Is(err, sessions.ErrSessionNotFound) {
		return nil, fmt.Errorf("get last session: %w", err)
	}

	loadContext, err := e.runs.Context(ctx)
	if err != nil {
		return nil, fmt.Errorf("get running load context: %w", err)
	}

	recoveryScore := e.latestRecoveryScore(ctx)

	weekType := e.resolveWeekType(params.WeekType, lastSession, now)

	// 1+2: rotation
	recommended, rationale := rotate(lastSession, weekType)

	// 3: day-of-week override
	if overridden, overrideRationale, ok := dayOverride(now.Weekday(), weekType); ok {
		recommended = overridden
		rationale = overrideRationale
	}

	// 4: conditioning never lands on a kid week
	if recommended == SessionC && weekType.IsKid() {
		recommended = SessionA
		rationale = "kid week, skipping conditioning, falling back to session A"
	}

	// 5: high running load steers away from the lower-body day
	if recommended == SessionA && loadContext.Level == running.LoadLevelHigh {
		recommended = SessionB
		rationale = "running load is high, swapping the lower-body session for upper-body B"
	}

	// 6: re-entry after a layoff
	var lastSessionInfo *LastSessionInfo
	reentry := false
	if lastSession != nil {
		daysAgo := int(now.Sub(lastSession.Date).Hours() / 24)
		lastSessionInfo = &LastSessionInfo{
			Type:    lastSession.Type,
			Date:    lastSession.Date,
			DaysAgo: daysAgo,
		}
		if daysAgo >= e.cfg.ReentryGapDays {
			reentry = true
			rationale += fmt.Sprintf("; first session after %d days off, weights reduced", daysAgo)
		}
	}

	if loadContext.InjuryRisk {
		rationale = fmt.Sprintf(
			"warning: acute running load is %.2fx the chronic baseline, consider a rest day; %s",
			loadContext.ACWR, rationale,
		)
	}

	frequency, err := e.sessions.Frequency(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("get frequency stats: %w", err)
	}

	suggestion := &SessionSuggestion{
		RecommendedSession:   recommended,
		Rationale:            rationale,
		WeekType:             weekType,
		RunningLoadLast7Days: loadContext.WeeklyLoad,
		RunningContext:       loadContext,
		Frequency:            frequency,
		LastSession:          lastSessionInfo,
	}

	// 7: assemble the exercise list
	if recommended == SessionC {
		wod, wodSuggestions, err := e.generateWOD(ctx, weekType, loadContext, reentry, params.Equipment, recoveryScore)
		if err != nil {
			return nil, fmt.Errorf("generate wod: %w", err)
		}
		suggestion.WOD = wod
		suggestion.SuggestedExercises = wodSuggestions
	} else {
		templateExercises, err := e.exercises.List(ctx, exercises.ListParams{
			Patterns: sessionTemplates[recommended],
			Limit:    e.cfg.TemplateExerciseLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("list template exercises: %w", err)
		}

		exerciseSuggestions, err := e.adviseExercises(ctx, templateExercises, weekType, loadContext, reentry, recoveryScore)
		if err != nil {
			return nil, err
		}
		suggestion.SuggestedExercises = exerciseSuggestions
	}

	span.SetAttributes(attribute.String("recommended", recommended))
	span.SetAttributes(attribute.String("week-type", string(weekType)))
	span.SetAttributes(attribute.Int("exercises", len(suggestion.SuggestedExercises)))

	return suggestion, nil
}

// adviseExercises runs the overload advisor for each exercise, with one
// batched history fetch for the whole list.
func (e *Engine) adviseExercises(
	ctx context.Context,
	targetExercises []exercises.Exercise,
	weekType sessions.WeekType,
	loadContext *running.LoadContext,
	reentry bool,
	recoveryScore *float64,
) ([]ExerciseSuggestion, error) {
	if len(targetExercises) == 0 {
		return []ExerciseSuggestion{}, nil
	}

	exerciseIDs := make([]int, 0, len(targetExercises))
	for _, exercise := range targetExercises {
		exerciseIDs = append(exerciseIDs, exercise.ID)
	}

	history, err := e.sessions.HistoryForExercises(ctx, exerciseIDs, e.cfg.HistoryPerExercise)
	if err != nil {
		return nil, fmt.Errorf("batch fetch exercise history: %w", err)
	}

	exerciseSuggestions := make([]ExerciseSuggestion, 0, len(targetExercises))
	for _, exercise := range targetExercises {
		exerciseHistory := history[exercise.ID]

		advice := e.advisor.Suggest(overload.Context{
			Exercise:      exercise,
			History:       exerciseHistory,
			WeekType:      weekType,
			LoadLevel:     loadContext.Level,
			RecoveryScore: recoveryScore,
		})
		if reentry {
			advice = e.advisor.ReentryAdjust(exercise, advice)
		}

		exerciseSuggestions = append(exerciseSuggestions, ExerciseSuggestion{
			Name:            exercise.Name,
			ExerciseID:      exercise.ID,
			SuggestedWeight: advice.Weight,
			SuggestedSets:   advice.Sets,
			SuggestedReps:   advice.Reps,
			Confidence:      advice.Confidence,
			LastWeight:      overload.LastWorkingWeight(exerciseHistory),
			Rationale:       advice.Rationale,
		})
	}

	return exerciseSuggestions, nil
}

// rotate applies the A -> B -> C cycle, C giving way to A on kid weeks.
func rotate(lastSession *sessions.Session, weekType sessions.WeekType) (string, string) {
	if lastSession == nil {
		return SessionA, "no previous session, starting with session A"
	}

	switch lastSession.Type {
	case SessionA:
		return SessionB, "last session was A, rotating to B"
	case SessionB:
		if weekType.IsKid() {
			return SessionA, "last session was B, kid week, rotating back to A"
		}
		return SessionC, "last session was B, rotating to C"
	default:
		return SessionA, fmt.Sprintf("last session was %s, rotating to A", lastSession.Type)
	}
}

func dayOverride(weekday time.Weekday, weekType sessions.WeekType) (string, string, bool) {
	switch weekday {
	case time.Tuesday:
		return SessionA, "Tuesday is the scheduled A day", true
	case time.Friday:
		return SessionB, "Friday is the scheduled B day", true
	case time.Sunday:
		if !weekType.IsKid() {
			return SessionC, "Sunday is the scheduled conditioning day", true
		}
	}
	return "", "", false
}

// resolveWeekType prefers the caller's explicit choice, then the last
// session's week type if it was logged in the current calendar week,
// then defaults to non-kid.
func (e *Engine) resolveWeekType(
	requested *sessions.WeekType,
	lastSession *sessions.Session,
	now time.Time,
) sessions.WeekType {
	if requested != nil && (*requested == sessions.WeekTypeKid || *requested == sessions.WeekTypeNonKid) {
		return *requested
	}
	if lastSession != nil && lastSession.WeekType != nil {
		nowYear, nowWeek := now.ISOWeek()
		lastYear, lastWeek := lastSession.Date.ISOWeek()
		if nowYear == lastYear && nowWeek == lastWeek {
			return *lastSession.WeekType
		}
	}
	return sessions.WeekTypeNonKid
}

func (e *Engine) latestRecoveryScore(ctx context.Context) *float64 {
	checkin, err := e.recovery.Latest(ctx)
	if err != nil || checkin == nil {
		return nil
	}
	score := checkin.Score()
	return &score
}
