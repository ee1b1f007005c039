package recovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvasiljevic/lifehub/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrNoCheckin = errors.New("no recovery checkin found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, checkin Checkin) (_ *Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recovery.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !checkin.Valid() {
		return nil, errors.New("checkin values must be between 1 and 5")
	}

	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO recovery_checkin (date, sleep, soreness, energy, motivation)
			VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`,
		checkin.Date, checkin.Sleep, checkin.Soreness, checkin.Energy, checkin.Motivation,
	).Scan(&checkin.ID); err != nil {
		return nil, fmt.Errorf("insert checkin: %w", err)
	}

	span.SetAttributes(attribute.Int("checkin.id", checkin.ID))
	return &checkin, nil
}

// Latest returns the most recent check-in, ErrNoCheckin when none exists.
func (r *Repo) Latest(ctx context.Context) (_ *Checkin, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.recovery.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, date, sleep, soreness, energy, motivation
			FROM recovery_checkin
			ORDER BY date DESC
			LIMIT 1;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoCheckin
	}

	var checkin Checkin
	if err := rows.Scan(
		&checkin.ID, &checkin.Date, &checkin.Sleep,
		&checkin.Soreness, &checkin.Energy, &checkin.Motivation,
	); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}
	return &checkin, nil
}
