package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mvasiljevic/lifehub/internal/notifications"
	"github.com/mvasiljevic/lifehub/internal/telemetry/metrics"
	"github.com/mvasiljevic/lifehub/internal/telemetry/tracing"
	"github.com/mvasiljevic/lifehub/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=sessions_mocks_test.go -package=sessions_test

type sessionsRepo interface {
	Add(ctx context.Context, session Session) (*Session, error)
	Complete(ctx context.Context, id int, completedAt time.Time, rpe *float64) error
	Get(ctx context.Context, id int) (*Session, error)
	List(ctx context.Context, params ListParams) ([]Session, error)
}

type notifier interface {
	Send(ctx context.Context, message notifications.Message) error
}

// QuickLogRequest is the shorthand payload: one line per exercise,
// expanded into identical sets server-side.
type QuickLogRequest struct {
	Type      string             `json:"type"`
	Date      *time.Time         `json:"date,omitempty"`
	WeekType  *WeekType          `json:"weekType,omitempty"`
	Exercises []QuickLogExercise `json:"exercises"`
}

type QuickLogExercise struct {
	ExerciseID int      `json:"exerciseId"`
	Sets       int      `json:"sets"`
	Reps       *int     `json:"reps,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	RPE        *float64 `json:"rpe,omitempty"`
}

type CompleteRequest struct {
	RPE *float64 `json:"rpe,omitempty"`
}

type CompleteResponse struct {
	CompletedID int `json:"completedId"`
}

type ListResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int       `json:"total"`
}

type Handler struct {
	repo     sessionsRepo
	notifier notifier
	metrics  *metrics.Manager
}

func NewHandler(repo sessionsRepo, notifier notifier, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:     repo,
		notifier: notifier,
		metrics:  metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-session")
	router.HandleFunc("/quick", handler.HandleQuickAdd).Methods("POST", "OPTIONS").Name("quick-log-session")
	router.HandleFunc("", handler.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	router.HandleFunc("/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	router.HandleFunc("/{id}/complete", handler.HandleComplete).Methods("PUT", "OPTIONS").Name("complete-session")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var session Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Tracef("new session, unmarshal json params: %s", err)
		http.Error(w, "add session failed", http.StatusBadRequest)
		return
	}

	if session.Type == "" {
		http.Error(w, "error, session type empty", http.StatusBadRequest)
		return
	}
	if session.Date.IsZero() {
		session.Date = time.Now()
	}

	handler.addSession(ctx, w, session)
}

func (handler *Handler) HandleQuickAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.quickLog")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var quickLog QuickLogRequest
	if err := json.NewDecoder(r.Body).Decode(&quickLog); err != nil {
		log.Tracef("quick log session, unmarshal json params: %s", err)
		http.Error(w, "quick log failed", http.StatusBadRequest)
		return
	}

	if quickLog.Type == "" {
		http.Error(w, "error, session type empty", http.StatusBadRequest)
		return
	}

	session := Session{
		Type:     quickLog.Type,
		Date:     time.Now(),
		WeekType: quickLog.WeekType,
	}
	if quickLog.Date != nil {
		session.Date = *quickLog.Date
	}

	for _, quickExercise := range quickLog.Exercises {
		sessionExercise := SessionExercise{ExerciseID: quickExercise.ExerciseID}
		for setNumber := 1; setNumber <= quickExercise.Sets; setNumber++ {
			sessionExercise.Sets = append(sessionExercise.Sets, Set{
				SetNumber: setNumber,
				Weight:    quickExercise.Weight,
				Reps:      quickExercise.Reps,
				RPE:       quickExercise.RPE,
			})
		}
		session.Exercises = append(session.Exercises, sessionExercise)
	}

	handler.addSession(ctx, w, session)
}

func (handler *Handler) addSession(ctx context.Context, w http.ResponseWriter, session Session) {
	addedSession, err := handler.repo.Add(ctx, session)
	if err != nil {
		log.Errorf("failed to add new session [%s]: %s", session.Type, err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSessionsLogged.Inc()

	addedSessionJson, err := json.Marshal(addedSession)
	if err != nil {
		log.Errorf("failed to marshal new session: %s", err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedSessionJson, http.StatusCreated)
}

func (handler *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.complete")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, session id invalid", http.StatusBadRequest)
		return
	}

	var completeReq CompleteRequest
	if r.Body != nil {
		// body is optional, RPE only
		_ = json.NewDecoder(r.Body).Decode(&completeReq)
	}

	if err := handler.repo.Complete(ctx, id, time.Now(), completeReq.RPE); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to complete session %d: %s", id, err)
		http.Error(w, "failed to complete session", http.StatusInternalServerError)
		return
	}

	// fire and forget, completion must not wait on the webhook
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := handler.notifier.Send(notifyCtx, notifications.Message{
			Title: "Session completed",
			Body:  fmt.Sprintf("Training session %d marked as done.", id),
		}); err != nil {
			log.Errorf("failed to send session completed notification: %s", err)
		}
	}()

	completeResponseJson, err := json.Marshal(CompleteResponse{CompletedID: id})
	if err != nil {
		log.Errorf("failed to marshal complete session response: %s", err)
		http.Error(w, "failed to complete session", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, completeResponseJson)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, session id invalid", http.StatusBadRequest)
		return
	}

	session, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get session %d: %s", id, err)
		http.Error(w, "failed to get session", http.StatusInternalServerError)
		return
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("failed to marshal session %d: %s", id, err)
		http.Error(w, "failed to get session", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, sessionJson)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	params := ListParams{}
	query := r.URL.Query()
	if fromParam := query.Get("from"); fromParam != "" {
		from, err := time.Parse(time.RFC3339, fromParam)
		if err != nil {
			http.Error(w, "error, invalid from param", http.StatusBadRequest)
			return
		}
		params.From = &from
	}
	if toParam := query.Get("to"); toParam != "" {
		to, err := time.Parse(time.RFC3339, toParam)
		if err != nil {
			http.Error(w, "error, invalid to param", http.StatusBadRequest)
			return
		}
		params.To = &to
	}
	if limitParam := query.Get("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil {
			http.Error(w, "error, invalid limit param", http.StatusBadRequest)
			return
		}
		params.Limit = limit
	}

	found, err := handler.repo.List(ctx, params)
	if err != nil {
		log.Errorf("failed to list sessions: %s", err)
		http.Error(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		Sessions: found,
		Total:    len(found),
	})
	if err != nil {
		log.Errorf("failed to marshal sessions list: %s", err)
		http.Error(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listResponseJson)
}
