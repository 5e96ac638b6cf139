package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vaadhorim/portal/internal/telemetry/metrics"
	"github.com/vaadhorim/portal/internal/telemetry/tracing"
	"github.com/vaadhorim/portal/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxMessageLength = 4000

type feedbackRepo interface {
	Add(ctx context.Context, feedback *Feedback) (*Feedback, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]Feedback, error)
}

type ListResponse struct {
	Entries []Feedback `json:"entries"`
	Total   int        `json:"total"`
}

type Handler struct {
	repo    feedbackRepo
	metrics *metrics.Manager
}

func NewHandler(repo feedbackRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

// SetupRoutes registers admin routes. The public POST route is registered
// in the server with a rate limiter wrapped around HandleAdd.
func (handler *Handler) SetupRoutes(mainRouter *mux.Router, rateLimit mux.MiddlewareFunc) {
	mainRouter.Handle("/feedback", rateLimit(http.HandlerFunc(handler.HandleAdd))).Methods("POST", "OPTIONS").Name("new-feedback")
	mainRouter.HandleFunc("/feedback", handler.HandleList).Methods("GET", "OPTIONS").Name("list-feedback")
	mainRouter.HandleFunc("/feedback/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-feedback")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.feedback.new")
	defer span.End()

	var entry Feedback
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Tracef("new feedback, unmarshal json params: %s", err)
		http.Error(w, "add feedback failed", http.StatusBadRequest)
		return
	}

	if entry.Message == "" {
		http.Error(w, "error, feedback message empty", http.StatusBadRequest)
		return
	}
	if len(entry.Message) > maxMessageLength {
		http.Error(w, "error, feedback message too long", http.StatusBadRequest)
		return
	}
	if entry.Language == "" {
		entry.Language = LanguageHebrew
	}
	if !entry.Language.IsValid() {
		http.Error(w, "error, feedback language invalid", http.StatusBadRequest)
		return
	}
	entry.CreatedAt = time.Now()

	addedEntry, err := handler.repo.Add(ctx, &entry)
	if err != nil {
		log.Errorf("failed to add new feedback: %s", err)
		http.Error(w, "error, failed to add new feedback", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterFeedbackEntries.Inc()
	log.Debugf("new feedback added: %d", addedEntry.ID)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"addedId": %d}`, addedEntry.ID))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.feedback.list")
	defer span.End()

	entries, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list feedback error: %s", err)
		http.Error(w, "failed to get feedback", http.StatusInternalServerError)
		return
	}

	if len(entries) == 0 {
		entries = []Feedback{}
	}

	listRespJson, err := json.Marshal(ListResponse{
		Entries: entries,
		Total:   len(entries),
	})
	if err != nil {
		log.Errorf("marshal feedback error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listRespJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.feedback.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrFeedbackNotFound) {
			http.Error(w, "feedback not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete feedback %d: %s", id, err)
		http.Error(w, "error, feedback not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"deletedId": %d}`, id))
}
