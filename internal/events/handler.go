package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/vaadhorim/portal/internal/telemetry/tracing"
	"github.com/vaadhorim/portal/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type eventsRepo interface {
	Add(ctx context.Context, event *Event) (*Event, error)
	Get(ctx context.Context, id int) (*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, page, size int) (_ []Event, total int, err error)
	Upcoming(ctx context.Context, now time.Time) ([]Event, error)
}

type ListResponse struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
}

type DeleteEventResponse struct {
	DeletedID int `json:"deletedId"`
}

type UpdateEventResponse struct {
	UpdatedID int `json:"updatedId"`
}

type Handler struct {
	repo eventsRepo
}

func NewHandler(repo eventsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/events", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-event")
	mainRouter.HandleFunc("/events", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-event")
	mainRouter.HandleFunc("/events/upcoming", handler.HandleUpcoming).Methods("GET", "OPTIONS").Name("upcoming-events")
	mainRouter.HandleFunc("/events/page/{page}/size/{size}", handler.HandleList).Methods("GET", "OPTIONS").Name("list-events")
	mainRouter.HandleFunc("/events/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-event")
	mainRouter.HandleFunc("/events/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-event")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.new")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Tracef("new event, unmarshal json params: %s", err)
		http.Error(w, "add event failed", http.StatusBadRequest)
		return
	}

	if !event.HasTitle() {
		http.Error(w, "error, event title empty", http.StatusBadRequest)
		return
	}
	if event.StartsAt.IsZero() {
		http.Error(w, "error, event start empty", http.StatusBadRequest)
		return
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	addedEvent, err := handler.repo.Add(ctx, &event)
	if err != nil {
		log.Errorf("failed to add new event [%s]: %s", event.TitleHe, err)
		http.Error(w, "error, failed to add new event", http.StatusInternalServerError)
		return
	}

	addedEventJson, err := json.Marshal(addedEvent)
	if err != nil {
		log.Errorf("failed to marshal new event: %s", err)
		http.Error(w, "error, failed to add new event", http.StatusInternalServerError)
		return
	}

	log.Debugf("new event added: %d", addedEvent.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedEventJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	event, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		log.Errorf("get event %d: %s", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	eventJson, err := json.Marshal(event)
	if err != nil {
		log.Errorf("marshal event error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, eventJson)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.update")
	defer span.End()

	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Tracef("update event, unmarshal json params: %s", err)
		http.Error(w, "update event failed", http.StatusBadRequest)
		return
	}

	if event.ID <= 0 {
		http.Error(w, "error, event id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &event); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update event [%d]: %s", event.ID, err)
		http.Error(w, "error, failed to update event", http.StatusInternalServerError)
		return
	}

	updateRespJson, err := json.Marshal(UpdateEventResponse{UpdatedID: event.ID})
	if err != nil {
		log.Errorf("marshal update event response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, updateRespJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete event %d: %s", id, err)
		http.Error(w, "error, event not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteEventResponse{DeletedID: id})
	if err != nil {
		log.Errorf("marshal delete event response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, deleteRespJson)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.list")
	defer span.End()

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil || page < 1 {
		http.Error(w, "error, page invalid", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil || size < 1 {
		http.Error(w, "error, size invalid", http.StatusBadRequest)
		return
	}

	events, total, err := handler.repo.List(ctx, page, size)
	if err != nil {
		log.Errorf("list events error: %s", err)
		http.Error(w, "failed to get events", http.StatusInternalServerError)
		return
	}

	if len(events) == 0 {
		events = []Event{}
	}

	listRespJson, err := json.Marshal(ListResponse{
		Events: events,
		Total:  total,
	})
	if err != nil {
		log.Errorf("marshal events error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listRespJson)
}

func (handler *Handler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.upcoming")
	defer span.End()

	events, err := handler.repo.Upcoming(ctx, time.Now())
	if err != nil {
		log.Errorf("list upcoming events error: %s", err)
		http.Error(w, "failed to get events", http.StatusInternalServerError)
		return
	}

	if len(events) == 0 {
		events = []Event{}
	}

	eventsJson, err := json.Marshal(events)
	if err != nil {
		log.Errorf("marshal events error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, eventsJson)
}
