package running

import (
	"context"
	"fmt"
	"time"

	"github.com/mvasiljevic/lifehub/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert writes a synced activity, deduplicating on the external
// source id so a re-sync never creates duplicates.
func (r *Repo) Upsert(ctx context.Context, activity Activity) (_ *Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.running.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("external-id", activity.ExternalID))

	if err := r.db.QueryRow(
		ctx,
		`
			INSERT INTO run_activity
				(external_id, name, date, type, distance_km, duration_min, avg_pace_min_km, avg_heart_rate, elevation_gain_m, training_load)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (external_id) DO UPDATE SET
				name = EXCLUDED.name,
				date = EXCLUDED.date,
				type = EXCLUDED.type,
				distance_km = EXCLUDED.distance_km,
				duration_min = EXCLUDED.duration_min,
				avg_pace_min_km = EXCLUDED.avg_pace_min_km,
				avg_heart_rate = EXCLUDED.avg_heart_rate,
				elevation_gain_m = EXCLUDED.elevation_gain_m,
				training_load = EXCLUDED.training_load
			RETURNING id;`,
		activity.ExternalID, activity.Name, activity.Date, activity.Type,
		activity.DistanceKm, activity.DurationMin, activity.AvgPaceMinKm,
		activity.AvgHeartRate, activity.ElevationGainM, activity.TrainingLoad,
	).Scan(&activity.ID); err != nil {
		return nil, fmt.Errorf("upsert activity: %w", err)
	}

	return &activity, nil
}

// LoadSum aggregates training load over a date range.
func (r *Repo) LoadSum(ctx context.Context, from, to time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.running.loadSum")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var loadSum int
	if err := r.db.QueryRow(
		ctx,
		`SELECT COALESCE(SUM(training_load), 0) FROM run_activity WHERE date >= $1 AND date <= $2;`,
		from, to,
	).Scan(&loadSum); err != nil {
		return 0, fmt.Errorf("query row: %w", err)
	}

	span.SetAttributes(attribute.Int("load-sum", loadSum))
	return loadSum, nil
}

func (r *Repo) List(ctx context.Context, limit int) (_ []Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.running.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, external_id, name, date, type, distance_km, duration_min, avg_pace_min_km, avg_heart_rate, elevation_gain_m, training_load
			FROM run_activity
			ORDER BY date DESC
			LIMIT NULLIF($1, 0);`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var activity Activity
		if err := rows.Scan(
			&activity.ID, &activity.ExternalID, &activity.Name, &activity.Date, &activity.Type,
			&activity.DistanceKm, &activity.DurationMin, &activity.AvgPaceMinKm,
			&activity.AvgHeartRate, &activity.ElevationGainM, &activity.TrainingLoad,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return activities, nil
}
