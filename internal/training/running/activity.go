package running

import (
	"errors"
	"math"
	"regexp"
	"time"
)

type RunType string

const (
	RunTypeEasy      RunType = "easy"
	RunTypeIntervals RunType = "intervals"
	RunTypeTempo     RunType = "tempo"
	RunTypeHills     RunType = "hills"
	RunTypeLong      RunType = "long"
)

type LoadLevel string

const (
	LoadLevelLow      LoadLevel = "low"
	LoadLevelModerate LoadLevel = "moderate"
	LoadLevelHigh     LoadLevel = "high"
)

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Activity is one synced run, deduplicated by ExternalID.
type Activity struct {
	ID             int       `json:"id"`
	ExternalID     string    `json:"externalId"`
	Name           string    `json:"name"`
	Date           time.Time `json:"date"`
	Type           RunType   `json:"type"`
	DistanceKm     float64   `json:"distanceKm"`
	DurationMin    float64   `json:"durationMin"`
	AvgPaceMinKm   float64   `json:"avgPaceMinKm"`
	AvgHeartRate   *float64  `json:"avgHeartRate,omitempty"`
	ElevationGainM *float64  `json:"elevationGainM,omitempty"`
	TrainingLoad   int       `json:"trainingLoad"`
}

const (
	defaultHeartRate = 140.0

	hardHeartRate     = 160.0
	elevatedHeartRate = 145.0
)

// CalculateTrainingLoad computes a cheap TRIMP-like load proxy that
// needs no runner-specific max-HR calibration: volume term scaled by a
// heart-rate intensity modifier, plus an elevation bonus. Missing heart
// rate and elevation fall back to neutral values, distance and duration
// are required.
func CalculateTrainingLoad(activity Activity) (int, error) {
	if activity.DistanceKm <= 0 || activity.DurationMin <= 0 {
		return 0, errors.New("activity distance and duration are required")
	}

	heartRate := defaultHeartRate
	if activity.AvgHeartRate != nil {
		heartRate = *activity.AvgHeartRate
	}

	intensityMod := 1.0
	switch {
	case heartRate > hardHeartRate:
		intensityMod = 1.5
	case heartRate > elevatedHeartRate:
		intensityMod = 1.2
	}

	elevationGain := 0.0
	if activity.ElevationGainM != nil {
		elevationGain = *activity.ElevationGainM
	}

	load := (activity.DistanceKm*10+activity.DurationMin*0.5)*intensityMod + elevationGain*0.1
	return int(math.Round(load)), nil
}

var runTypeNamePatterns = []struct {
	pattern *regexp.Regexp
	runType RunType
}{
	{regexp.MustCompile(`(?i)\blong\b`), RunTypeLong},
	{regexp.MustCompile(`(?i)interval`), RunTypeIntervals},
	{regexp.MustCompile(`(?i)tempo`), RunTypeTempo},
	{regexp.MustCompile(`(?i)hill`), RunTypeHills},
	{regexp.MustCompile(`(?i)\beasy\b`), RunTypeEasy},
}

// ClassifyRunType labels a run. An athlete-labeled title wins over the
// pace/HR heuristics, the intent behind "easy long run" beats whatever
// the metrics say.
func ClassifyRunType(activity Activity) RunType {
	for _, namePattern := range runTypeNamePatterns {
		if namePattern.pattern.MatchString(activity.Name) {
			return namePattern.runType
		}
	}

	heartRate := defaultHeartRate
	if activity.AvgHeartRate != nil {
		heartRate = *activity.AvgHeartRate
	}
	elevationGain := 0.0
	if activity.ElevationGainM != nil {
		elevationGain = *activity.ElevationGainM
	}

	pace := activity.AvgPaceMinKm
	if pace == 0 && activity.DistanceKm > 0 {
		pace = activity.DurationMin / activity.DistanceKm
	}

	switch {
	case activity.DistanceKm > 12:
		return RunTypeLong
	case heartRate > 165 || (pace > 0 && pace < 4.5):
		return RunTypeIntervals
	case heartRate > 150 || (pace > 0 && pace < 5.0):
		return RunTypeTempo
	case elevationGain > 100:
		return RunTypeHills
	default:
		return RunTypeEasy
	}
}

type Config struct {
	ModerateLoadThreshold int
	HighLoadThreshold     int
	IncreasingACWR        float64
	DecreasingACWR        float64
	InjuryRiskACWR        float64
	AcuteWindowDays       int
	ChronicWindowDays     int
}

func DefaultConfig() Config {
	return Config{
		ModerateLoadThreshold: 300,
		HighLoadThreshold:     500,
		IncreasingACWR:        1.1,
		DecreasingACWR:        0.9,
		InjuryRiskACWR:        1.5,
		AcuteWindowDays:       7,
		ChronicWindowDays:     28,
	}
}

func (cfg Config) ClassifyLoad(load int) LoadLevel {
	switch {
	case load > cfg.HighLoadThreshold:
		return LoadLevelHigh
	case load > cfg.ModerateLoadThreshold:
		return LoadLevelModerate
	default:
		return LoadLevelLow
	}
}
