package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mvasiljevic/lifehub/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrSessionNotFound = errors.New("session not found")

type ListParams struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add stores the session together with its exercises and sets in one
// transaction.
func (r *Repo) Add(ctx context.Context, session Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if session.Type == "" || session.Date.IsZero() {
		return nil, errors.New("session type or date empty")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err := tx.QueryRow(
		ctx,
		`INSERT INTO training_session (date, type, week_type, rpe, completed_at)
			VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`,
		session.Date, session.Type, session.WeekType, session.RPE, session.CompletedAt,
	).Scan(&session.ID); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	for i := range session.Exercises {
		sessionExercise := &session.Exercises[i]
		sessionExercise.OrderIndex = i + 1
		if err := tx.QueryRow(
			ctx,
			`INSERT INTO session_exercise (session_id, exercise_id, order_index)
				VALUES ($1, $2, $3)
			RETURNING id;`,
			session.ID, sessionExercise.ExerciseID, sessionExercise.OrderIndex,
		).Scan(&sessionExercise.ID); err != nil {
			return nil, fmt.Errorf("insert session exercise: %w", err)
		}

		for j := range sessionExercise.Sets {
			set := &sessionExercise.Sets[j]
			if set.SetNumber == 0 {
				set.SetNumber = j + 1
			}
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO session_set
						(session_exercise_id, set_number, weight, reps, time_sec, distance_m, rpe)
					VALUES ($1, $2, $3, $4, $5, $6, $7);`,
				sessionExercise.ID, set.SetNumber, set.Weight, set.Reps, set.TimeSec, set.DistanceM, set.RPE,
			); err != nil {
				return nil, fmt.Errorf("insert set: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	span.SetAttributes(attribute.Int("session.id", session.ID))
	return &session, nil
}

func (r *Repo) Complete(ctx context.Context, id int, completedAt time.Time, rpe *float64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE training_session SET completed_at = $1, rpe = COALESCE($2, rpe) WHERE id = $3;`,
		completedAt, rpe, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, date, type, week_type, rpe, completed_at FROM training_session WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}

	found, err := r.rows2sessions(rows)
	if err != nil {
		return nil, err
	}
	if len(found) != 1 {
		return nil, ErrSessionNotFound
	}

	session := &found[0]
	if err := r.attachExercises(ctx, session); err != nil {
		return nil, fmt.Errorf("attach exercises: %w", err)
	}
	return session, nil
}

func (r *Repo) List(ctx context.Context, params ListParams) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, date, type, week_type, rpe, completed_at
			FROM training_session
			WHERE ($1::timestamptz IS NULL OR date >= $1)
				AND ($2::timestamptz IS NULL OR date <= $2)
			ORDER BY date DESC
			LIMIT NULLIF($3, 0);`,
		params.From, params.To, params.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return r.rows2sessions(rows)
}

// Last returns the most recent session, used for rotation.
func (r *Repo) Last(ctx context.Context) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.last")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, date, type, week_type, rpe, completed_at
			FROM training_session
			ORDER BY date DESC
			LIMIT 1;`,
	)
	if err != nil {
		return nil, err
	}

	found, err := r.rows2sessions(rows)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrSessionNotFound
	}
	return &found[0], nil
}

// HistoryForExercises fetches the recent history for all given exercises
// in a single flat query, then groups the rows by exercise id client-side,
// capping each group at perExercise entries. One query regardless of how
// many exercises the caller asks about.
func (r *Repo) HistoryForExercises(
	ctx context.Context,
	exerciseIDs []int,
	perExercise int,
) (_ map[int][]HistoryEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.historyForExercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercises", len(exerciseIDs)))
	span.SetAttributes(attribute.Int("per-exercise", perExercise))

	if len(exerciseIDs) == 0 {
		return map[int][]HistoryEntry{}, nil
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				se.exercise_id, se.id, ts.id, ts.date,
				ss.set_number, ss.weight, ss.reps, ss.time_sec, ss.distance_m, ss.rpe
			FROM session_exercise se
			JOIN training_session ts ON se.session_id = ts.id
			LEFT JOIN session_set ss ON ss.session_exercise_id = se.id
			WHERE se.exercise_id = ANY($1)
			ORDER BY ts.date DESC, se.id, ss.set_number;`,
		exerciseIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	history := make(map[int][]HistoryEntry)
	// session-exercise ids whose group was already full
	skipped := make(map[int]bool)
	currentSeID := -1

	for rows.Next() {
		var exerciseID, seID, sessionID int
		var sessionDate time.Time
		var setNumber *int
		var set Set

		if err := rows.Scan(
			&exerciseID, &seID, &sessionID, &sessionDate,
			&setNumber, &set.Weight, &set.Reps, &set.TimeSec, &set.DistanceM, &set.RPE,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		if seID != currentSeID {
			currentSeID = seID
			if len(history[exerciseID]) >= perExercise {
				skipped[seID] = true
				continue
			}
			history[exerciseID] = append(history[exerciseID], HistoryEntry{
				SessionID:   sessionID,
				SessionDate: sessionDate,
			})
		}
		if skipped[seID] {
			continue
		}

		if setNumber != nil {
			set.SetNumber = *setNumber
			entries := history[exerciseID]
			entry := &entries[len(entries)-1]
			entry.Sets = append(entry.Sets, set)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return history, nil
}

// Frequency counts the sessions logged this calendar week and month.
func (r *Repo) Frequency(ctx context.Context, now time.Time) (_ *FrequencyStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.frequency")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var stats FrequencyStats
	if err := r.db.QueryRow(
		ctx,
		`
			SELECT
				COUNT(*) FILTER (WHERE date >= date_trunc('week', $1::timestamptz)),
				COUNT(*) FILTER (WHERE date >= date_trunc('month', $1::timestamptz))
			FROM training_session
			WHERE date <= $1;`,
		now,
	).Scan(&stats.ThisWeek, &stats.ThisMonth); err != nil {
		return nil, fmt.Errorf("query row: %w", err)
	}

	return &stats, nil
}

func (r *Repo) attachExercises(ctx context.Context, session *Session) error {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				se.id, se.exercise_id, e.name, se.order_index,
				ss.set_number, ss.weight, ss.reps, ss.time_sec, ss.distance_m, ss.rpe
			FROM session_exercise se
			JOIN exercise e ON se.exercise_id = e.id
			LEFT JOIN session_set ss ON ss.session_exercise_id = se.id
			WHERE se.session_id = $1
			ORDER BY se.order_index, ss.set_number;`,
		session.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	currentSeID := -1
	for rows.Next() {
		var seID, exerciseID, orderIndex int
		var name string
		var setNumber *int
		var set Set

		if err := rows.Scan(
			&seID, &exerciseID, &name, &orderIndex,
			&setNumber, &set.Weight, &set.Reps, &set.TimeSec, &set.DistanceM, &set.RPE,
		); err != nil {
			return fmt.Errorf("rows scan: %w", err)
		}

		if seID != currentSeID {
			currentSeID = seID
			session.Exercises = append(session.Exercises, SessionExercise{
				ID:         seID,
				ExerciseID: exerciseID,
				Name:       name,
				OrderIndex: orderIndex,
			})
		}

		if setNumber != nil {
			set.SetNumber = *setNumber
			sessionExercise := &session.Exercises[len(session.Exercises)-1]
			sessionExercise.Sets = append(sessionExercise.Sets, set)
		}
	}
	return rows.Err()
}

func (r *Repo) rows2sessions(rows pgx.Rows) ([]Session, error) {
	defer rows.Close()

	var found []Session
	for rows.Next() {
		var session Session
		if err := rows.Scan(
			&session.ID, &session.Date, &session.Type,
			&session.WeekType, &session.RPE, &session.CompletedAt,
		); err != nil {
			return nil, err
		}
		found = append(found, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return found, nil
}
