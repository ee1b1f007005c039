package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvasiljevic/lifehub/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrTaskNotFound = errors.New("task not found")

type ListParams struct {
	OnlyPending bool
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, task Task) (_ *Task, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tasks.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if task.Title == "" || task.CreatedAt.IsZero() {
		return nil, errors.New("task title or timestamp empty")
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO task (title, details, created_at, due_date, done, completed_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;`,
		task.Title, task.Details, task.CreatedAt, task.DueDate, task.Done, task.CompletedAt,
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

	span.SetAttributes(attribute.Int("task.id", id))

	task.ID = id
	return &task, nil
}

func (r *Repo) Update(ctx context.Context, task *Task) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tasks.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", task.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE task SET title = $1, details = $2, due_date = $3, done = $4, completed_at = $5 WHERE id = $6;`,
		task.Title, task.Details, task.DueDate, task.Done, task.CompletedAt, task.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tasks.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM task WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Task, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tasks.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, title, details, created_at, due_date, done, completed_at FROM task WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	tasks, err := r.rows2tasks(rows)
	if err != nil {
		return nil, err
	}

	if len(tasks) != 1 {
		return nil, ErrTaskNotFound
	}

	return &tasks[0], nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Task, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tasks.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Bool("only-pending", params.OnlyPending))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, title, details, created_at, due_date, done, completed_at
			FROM task
			WHERE ($1::boolean IS FALSE OR done IS FALSE)
			ORDER BY created_at DESC;`,
		params.OnlyPending,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	tasks, err := r.rows2tasks(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2tasks: %w", err)
	}
	return tasks, nil
}

func (r *Repo) rows2tasks(rows pgx.Rows) ([]Task, error) {
	var tasks []Task
	for rows.Next() {
		var task Task
		if err := rows.Scan(
			&task.ID, &task.Title, &task.Details, &task.CreatedAt,
			&task.DueDate, &task.Done, &task.CompletedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
