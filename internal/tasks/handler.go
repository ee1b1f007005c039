package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mvasiljevic/lifehub/internal/telemetry/metrics"
	"github.com/mvasiljevic/lifehub/internal/telemetry/tracing"
	"github.com/mvasiljevic/lifehub/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=tasks_mocks_test.go -package=tasks_test

type tasksRepo interface {
	Add(ctx context.Context, task Task) (*Task, error)
	Get(ctx context.Context, id int) (*Task, error)
	List(ctx context.Context, params ListParams) ([]Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id int) error
}

type DeleteTaskResponse struct {
	DeletedID int `json:"deletedId"`
}

type UpdateTaskResponse struct {
	UpdatedID int `json:"updatedId"`
}

type ListResponse struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}

type Handler struct {
	repo    tasksRepo
	metrics *metrics.Manager
}

func NewHandler(repo tasksRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-task")
	router.HandleFunc("", handler.HandleList).Methods("GET", "OPTIONS").Name("list-tasks")
	router.HandleFunc("/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-task")
	router.HandleFunc("/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-task")
	router.HandleFunc("/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-task")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tasks.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var task Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		log.Tracef("new task, unmarshal json params: %s", err)
		http.Error(w, "add task failed", http.StatusBadRequest)
		return
	}

	if task.Title == "" {
		http.Error(w, "error, task title empty", http.StatusBadRequest)
		return
	}

	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	addedTask, err := handler.repo.Add(ctx, task)
	if err != nil {
		log.Errorf("failed to add new task [%s]: %s", task.Title, err)
		http.Error(w, "error, failed to add new task", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterTasks.Inc()

	addedTaskJson, err := json.Marshal(addedTask)
	if err != nil {
		log.Errorf("failed to marshal new task: %s", err)
		http.Error(w, "error, failed to add new task", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedTaskJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tasks.get")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, task id invalid", http.StatusBadRequest)
		return
	}

	task, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get task %d: %s", id, err)
		http.Error(w, "failed to get task", http.StatusInternalServerError)
		return
	}

	taskJson, err := json.Marshal(task)
	if err != nil {
		log.Errorf("failed to marshal task %d: %s", id, err)
		http.Error(w, "failed to get task", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, taskJson)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tasks.list")
	defer span.End()

	onlyPending := r.URL.Query().Get("pending") == "true"

	tasks, err := handler.repo.List(ctx, ListParams{OnlyPending: onlyPending})
	if err != nil {
		log.Errorf("failed to list tasks: %s", err)
		http.Error(w, "failed to list tasks", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		Tasks: tasks,
		Total: len(tasks),
	})
	if err != nil {
		log.Errorf("failed to marshal tasks list: %s", err)
		http.Error(w, "failed to list tasks", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listResponseJson)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tasks.update")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, task id invalid", http.StatusBadRequest)
		return
	}

	var task Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		log.Tracef("update task, unmarshal json params: %s", err)
		http.Error(w, "update task failed", http.StatusBadRequest)
		return
	}
	task.ID = id

	// mark completion time when a task gets flipped to done
	if task.Done && task.CompletedAt == nil {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := handler.repo.Update(ctx, &task); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update task %d: %s", id, err)
		http.Error(w, "failed to update task", http.StatusInternalServerError)
		return
	}

	updateResponseJson, err := json.Marshal(UpdateTaskResponse{UpdatedID: id})
	if err != nil {
		log.Errorf("failed to marshal update task response: %s", err)
		http.Error(w, "failed to update task", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, updateResponseJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tasks.delete")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, task id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete task %d: %s", id, err)
		http.Error(w, "failed to delete task", http.StatusInternalServerError)
		return
	}

	deleteResponseJson, err := json.Marshal(DeleteTaskResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete task response: %s", err)
		http.Error(w, "failed to delete task", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, deleteResponseJson)
}
