package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvasiljevic/lifehub/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrExerciseNotFound = errors.New("exercise not found")

// ListParams filters the exercise catalog. Categories and Patterns are
// a union (an exercise matching either is included), Equipment is an
// intersection filter on top of that.
type ListParams struct {
	Categories []Category
	Patterns   []MovementPattern
	Equipment  []string
	Limit      int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if exercise.Name == "" || exercise.Category == "" {
		return nil, errors.New("exercise name or category empty")
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO exercise (name, category, movement_pattern, equipment, muscles)
			VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`,
		exercise.Name, exercise.Category, exercise.MovementPattern, exercise.Equipment, exercise.Muscles,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("exercise.id", id))

	exercise.ID = id
	return &exercise, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, category, movement_pattern, equipment, muscles FROM exercise WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	found, err := r.rows2exercises(rows)
	if err != nil {
		return nil, err
	}
	if len(found) != 1 {
		return nil, ErrExerciseNotFound
	}
	return &found[0], nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("categories", len(params.Categories)))
	span.SetAttributes(attribute.Int("patterns", len(params.Patterns)))
	span.SetAttributes(attribute.Int("equipment", len(params.Equipment)))
	span.SetAttributes(attribute.Int("limit", params.Limit))

	categories := make([]string, 0, len(params.Categories))
	for _, c := range params.Categories {
		categories = append(categories, string(c))
	}
	patterns := make([]string, 0, len(params.Patterns))
	for _, p := range params.Patterns {
		patterns = append(patterns, string(p))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, name, category, movement_pattern, equipment, muscles
			FROM exercise
			WHERE (
					(cardinality($1::text[]) = 0 AND cardinality($2::text[]) = 0)
					OR category = ANY($1)
					OR movement_pattern = ANY($2)
				)
				AND (cardinality($3::text[]) = 0 OR equipment && $3)
			ORDER BY name
			LIMIT NULLIF($4, 0);`,
		categories, patterns, params.Equipment, params.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	found, err := r.rows2exercises(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2exercises: %w", err)
	}
	return found, nil
}

func (r *Repo) rows2exercises(rows pgx.Rows) ([]Exercise, error) {
	var found []Exercise
	for rows.Next() {
		var exercise Exercise
		if err := rows.Scan(
			&exercise.ID, &exercise.Name, &exercise.Category,
			&exercise.MovementPattern, &exercise.Equipment, &exercise.Muscles,
		); err != nil {
			return nil, err
		}
		found = append(found, exercise)
	}
	return found, nil
}
