package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vaadhorim/portal/internal/telemetry/tracing"
	"github.com/vaadhorim/portal/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type tasksRepo interface {
	Add(ctx context.Context, task *Task) (*Task, error)
	Get(ctx context.Context, id int) (*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, status *Status) ([]Task, error)
}

type ListResponse struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}

type Handler struct {
	repo tasksRepo
}

func NewHandler(repo tasksRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/tasks", handler.HandleList).Methods("GET", "OPTIONS").Name("list-tasks")
	mainRouter.HandleFunc("/tasks", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-task")
	mainRouter.HandleFunc("/tasks", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-task")
	mainRouter.HandleFunc("/tasks/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-task")
	mainRouter.HandleFunc("/tasks/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-task")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tasks.new")
	defer span.End()

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
	if task.Status == "" {
		task.Status = StatusOpen
	}
	if !task.Status.IsValid() {
		http.Error(w, "error, task status invalid", http.StatusBadRequest)
		return
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}

	addedTask, err := handler.repo.Add(ctx, &task)
	if err != nil {
		log.Errorf("failed to add new task [%s]: %s", task.Title, err)
		http.Error(w, "error, failed to add new task", http.StatusInternalServerError)
		return
	}

	addedTaskJson, err := json.Marshal(addedTask)
	if err != nil {
		log.Errorf("failed to marshal new task: %s", err)
		http.Error(w, "error, failed to add new task", http.StatusInternalServerError)
		return
	}

	log.Debugf("new task added: %d", addedTask.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedTaskJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tasks.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	task, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		log.Errorf("get task %d: %s", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	taskJson, err := json.Marshal(task)
	if err != nil {
		log.Errorf("marshal task error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, taskJson)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tasks.update")
	defer span.End()

	var task Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		log.Tracef("update task, unmarshal json params: %s", err)
		http.Error(w, "update task failed", http.StatusBadRequest)
		return
	}

	if task.ID <= 0 {
		http.Error(w, "error, task id invalid", http.StatusBadRequest)
		return
	}
	if !task.Status.IsValid() {
		http.Error(w, "error, task status invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &task); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update task [%d]: %s", task.ID, err)
		http.Error(w, "error, failed to update task", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"updatedId": %d}`, task.ID))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tasks.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete task %d: %s", id, err)
		http.Error(w, "error, task not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"deletedId": %d}`, id))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tasks.list")
	defer span.End()

	var status *Status
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := Status(statusStr)
		if !s.IsValid() {
			http.Error(w, "error, status invalid", http.StatusBadRequest)
			return
		}
		status = &s
	}

	tasks, err := handler.repo.List(ctx, status)
	if err != nil {
		log.Errorf("list tasks error: %s", err)
		http.Error(w, "failed to get tasks", http.StatusInternalServerError)
		return
	}

	if len(tasks) == 0 {
		tasks = []Task{}
	}

	listRespJson, err := json.Marshal(ListResponse{
		Tasks: tasks,
		Total: len(tasks),
	})
	if err != nil {
		log.Errorf("marshal tasks error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listRespJson)
}
