package running

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mvasiljevic/lifehub/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type loadSummer interface {
	LoadSum(ctx context.Context, from, to time.Time) (int, error)
}

// LoadContext is the running picture the session engine consults.
type LoadContext struct {
	ACWR           float64   `json:"acwr"`
	Trend          Trend     `json:"trend"`
	WeeklyLoad     int       `json:"weeklyLoad"`
	Recommendation string    `json:"recommendation"`
	Level          LoadLevel `json:"-"`
	InjuryRisk     bool      `json:"-"`
}

type Analyzer struct {
	repo loadSummer
	cfg  Config

	// injectable clock for tests
	Now func() time.Time
}

func NewAnalyzer(repo loadSummer, cfg Config) *Analyzer {
	return &Analyzer{
		repo: repo,
		cfg:  cfg,
		Now:  time.Now,
	}
}

func (a *Analyzer) WeeklyLoad(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "running.analyzer.weeklyLoad")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := a.Now()
	load, err := a.repo.LoadSum(ctx, now.AddDate(0, 0, -a.cfg.AcuteWindowDays), now)
	if err != nil {
		return 0, fmt.Errorf("load sum: %w", err)
	}
	return load, nil
}

func (a *Analyzer) Context(ctx context.Context) (_ *LoadContext, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "running.analyzer.context")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := a.Now()

	acuteLoad, err := a.repo.LoadSum(ctx, now.AddDate(0, 0, -a.cfg.AcuteWindowDays), now)
	if err != nil {
		return nil, fmt.Errorf("acute load sum: %w", err)
	}
	chronicLoad, err := a.repo.LoadSum(ctx, now.AddDate(0, 0, -a.cfg.ChronicWindowDays), now)
	if err != nil {
		return nil, fmt.Errorf("chronic load sum: %w", err)
	}

	// chronic load averaged to a weekly figure for a like-for-like ratio
	chronicWeeks := float64(a.cfg.ChronicWindowDays) / float64(a.cfg.AcuteWindowDays)
	chronicWeekly := float64(chronicLoad) / chronicWeeks

	loadContext := &LoadContext{
		WeeklyLoad: acuteLoad,
		Level:      a.cfg.ClassifyLoad(acuteLoad),
		Trend:      TrendStable,
	}

	if chronicWeekly > 0 {
		loadContext.ACWR = math.Round(float64(acuteLoad)/chronicWeekly*100) / 100
	}

	switch {
	case loadContext.ACWR > a.cfg.IncreasingACWR:
		loadContext.Trend = TrendIncreasing
	case chronicWeekly > 0 && loadContext.ACWR < a.cfg.DecreasingACWR:
		loadContext.Trend = TrendDecreasing
	}
	loadContext.InjuryRisk = loadContext.ACWR > a.cfg.InjuryRiskACWR

	switch {
	case loadContext.InjuryRisk:
		loadContext.Recommendation = "running load spiking well above the chronic baseline, cut running volume this week"
	case loadContext.Trend == TrendIncreasing:
		loadContext.Recommendation = "running load ramping up, watch recovery before adding more"
	case loadContext.Trend == TrendDecreasing:
		loadContext.Recommendation = "running load tapering, room to build back up"
	default:
		loadContext.Recommendation = "running load stable, keep the current rhythm"
	}

	span.SetAttributes(attribute.Int("weekly-load", loadContext.WeeklyLoad))
	span.SetAttributes(attribute.Float64("acwr", loadContext.ACWR))
	span.SetAttributes(attribute.String("trend", string(loadContext.Trend)))

	return loadContext, nil
}
