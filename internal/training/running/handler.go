package running

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mvasiljevic/lifehub/internal/telemetry/metrics"
	"github.com/mvasiljevic/lifehub/internal/telemetry/tracing"
	"github.com/mvasiljevic/lifehub/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=running_mocks_test.go -package=running_test

type runsRepo interface {
	Upsert(ctx context.Context, activity Activity) (*Activity, error)
	List(ctx context.Context, limit int) ([]Activity, error)
}

type loadContexter interface {
	Context(ctx context.Context) (*LoadContext, error)
}

type SyncRequest struct {
	Activities []Activity `json:"activities"`
}

type SyncResponse struct {
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

type ListResponse struct {
	Activities []Activity `json:"activities"`
	Total      int        `json:"total"`
}

type Handler struct {
	repo     runsRepo
	analyzer loadContexter
	metrics  *metrics.Manager
}

func NewHandler(repo runsRepo, analyzer loadContexter, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:     repo,
		analyzer: analyzer,
		metrics:  metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/sync", handler.HandleSync).Methods("POST", "OPTIONS").Name("sync-runs")
	router.HandleFunc("/context", handler.HandleLoadContext).Methods("GET", "OPTIONS").Name("running-load-context")
	router.HandleFunc("", handler.HandleList).Methods("GET", "OPTIONS").Name("list-runs")
}

// HandleSync ingests a batch of runs from the external sync collaborator.
// Each activity gets classified and its training load computed before the
// upsert, so downstream reads never see an unscored run.
func (handler *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.running.sync")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var syncReq SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&syncReq); err != nil {
		log.Tracef("sync runs, unmarshal json params: %s", err)
		http.Error(w, "sync runs failed", http.StatusBadRequest)
		return
	}

	var syncResp SyncResponse
	for _, activity := range syncReq.Activities {
		if activity.ExternalID == "" {
			syncResp.Failed++
			continue
		}

		load, err := CalculateTrainingLoad(activity)
		if err != nil {
			log.Errorf("sync runs, activity %s: %s", activity.ExternalID, err)
			syncResp.Failed++
			continue
		}
		activity.TrainingLoad = load
		if activity.AvgPaceMinKm == 0 && activity.DistanceKm > 0 {
			activity.AvgPaceMinKm = activity.DurationMin / activity.DistanceKm
		}
		if activity.Type == "" {
			activity.Type = ClassifyRunType(activity)
		}

		if _, err := handler.repo.Upsert(ctx, activity); err != nil {
			log.Errorf("sync runs, upsert activity %s: %s", activity.ExternalID, err)
			syncResp.Failed++
			continue
		}
		syncResp.Synced++
		handler.metrics.CounterRunActivitiesSynced.Inc()
	}

	syncRespJson, err := json.Marshal(syncResp)
	if err != nil {
		log.Errorf("sync runs, marshal response: %s", err)
		http.Error(w, "sync runs failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, syncRespJson)
}

func (handler *Handler) HandleLoadContext(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.running.loadContext")
	defer span.End()

	loadContext, err := handler.analyzer.Context(ctx)
	if err != nil {
		log.Errorf("failed to get running load context: %s", err)
		http.Error(w, "failed to get running load context", http.StatusInternalServerError)
		return
	}

	loadContextJson, err := json.Marshal(loadContext)
	if err != nil {
		log.Errorf("failed to marshal running load context: %s", err)
		http.Error(w, "failed to get running load context", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, loadContextJson)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.running.list")
	defer span.End()

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsedLimit, err := strconv.Atoi(limitParam)
		if err != nil {
			http.Error(w, "error, invalid limit param", http.StatusBadRequest)
			return
		}
		limit = parsedLimit
	}

	activities, err := handler.repo.List(ctx, limit)
	if err != nil {
		log.Errorf("failed to list run activities: %s", err)
		http.Error(w, "failed to list run activities", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		Activities: activities,
		Total:      len(activities),
	})
	if err != nil {
		log.Errorf("failed to marshal run activities: %s", err)
		http.Error(w, "failed to list run activities", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listResponseJson)
}
