package suggest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mvasiljevic/lifehub/internal/telemetry/metrics"
	"github.com/mvasiljevic/lifehub/internal/telemetry/tracing"
	"github.com/mvasiljevic/lifehub/internal/training/sessions"
	"github.com/mvasiljevic/lifehub/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	engine  *Engine
	metrics *metrics.Manager
}

func NewHandler(engine *Engine, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		engine:  engine,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/session", handler.HandleSessionSuggestion).Methods("GET", "OPTIONS").Name("session-suggestion")
}

func (handler *Handler) HandleSessionSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.suggest.session")
	defer span.End()

	params := Params{}
	query := r.URL.Query()

	if weekTypeParam := query.Get("weekType"); weekTypeParam != "" {
		weekType := sessions.WeekType(weekTypeParam)
		if weekType != sessions.WeekTypeKid && weekType != sessions.WeekTypeNonKid {
			http.Error(w, "error, invalid weekType param", http.StatusBadRequest)
			return
		}
		params.WeekType = &weekType
	}

	if equipmentParam := query.Get("equipment"); equipmentParam != "" {
		for _, equipment := range strings.Split(equipmentParam, ",") {
			if equipment = strings.TrimSpace(equipment); equipment != "" {
				params.Equipment = append(params.Equipment, equipment)
			}
		}
	}

	suggestion, err := handler.engine.Suggest(ctx, params)
	if err != nil {
		log.Errorf("failed to get session suggestion: %s", err)
		http.Error(w, "failed to get session suggestion", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSuggestionsServed.Inc()

	suggestionJson, err := json.Marshal(suggestion)
	if err != nil {
		log.Errorf("failed to marshal session suggestion: %s", err)
		http.Error(w, "failed to get session suggestion", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, suggestionJson)
}
