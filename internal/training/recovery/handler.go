package recovery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mvasiljevic/lifehub/internal/telemetry/tracing"
	"github.com/mvasiljevic/lifehub/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=recovery_mocks_test.go -package=recovery_test

type checkinsRepo interface {
	Add(ctx context.Context, checkin Checkin) (*Checkin, error)
	Latest(ctx context.Context) (*Checkin, error)
}

type CheckinResponse struct {
	Checkin
	Score float64 `json:"score"`
}

type Handler struct {
	repo checkinsRepo
}

func NewHandler(repo checkinsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-checkin")
	router.HandleFunc("/latest", handler.HandleLatest).Methods("GET", "OPTIONS").Name("latest-checkin")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var checkin Checkin
	if err := json.NewDecoder(r.Body).Decode(&checkin); err != nil {
		log.Tracef("new checkin, unmarshal json params: %s", err)
		http.Error(w, "add checkin failed", http.StatusBadRequest)
		return
	}

	if !checkin.Valid() {
		http.Error(w, "error, checkin values must be between 1 and 5", http.StatusBadRequest)
		return
	}
	if checkin.Date.IsZero() {
		checkin.Date = time.Now()
	}

	addedCheckin, err := handler.repo.Add(ctx, checkin)
	if err != nil {
		log.Errorf("failed to add new checkin: %s", err)
		http.Error(w, "error, failed to add new checkin", http.StatusInternalServerError)
		return
	}

	checkinJson, err := json.Marshal(CheckinResponse{
		Checkin: *addedCheckin,
		Score:   addedCheckin.Score(),
	})
	if err != nil {
		log.Errorf("failed to marshal new checkin: %s", err)
		http.Error(w, "error, failed to add new checkin", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, checkinJson, http.StatusCreated)
}

func (handler *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.latest")
	defer span.End()

	checkin, err := handler.repo.Latest(ctx)
	if err != nil {
		if errors.Is(err, ErrNoCheckin) {
			http.Error(w, "no checkin found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get latest checkin: %s", err)
		http.Error(w, "failed to get latest checkin", http.StatusInternalServerError)
		return
	}

	checkinJson, err := json.Marshal(CheckinResponse{
		Checkin: *checkin,
		Score:   checkin.Score(),
	})
	if err != nil {
		log.Errorf("failed to marshal latest checkin: %s", err)
		http.Error(w, "failed to get latest checkin", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, checkinJson)
}
