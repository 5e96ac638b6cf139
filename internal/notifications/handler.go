package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vaadhorim/portal/internal/telemetry/tracing"
	"github.com/vaadhorim/portal/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type subscriptionsRepo interface {
	Add(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Subscription, error)
}

type announcer interface {
	Announce(ctx context.Context, announcement Announcement, subs []Subscription) (sent int, failed int)
}

type ListResponse struct {
	Subscriptions []Subscription `json:"subscriptions"`
	Total         int            `json:"total"`
}

type AnnounceResponse struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

type Handler struct {
	repo      subscriptionsRepo
	announcer announcer
}

func NewHandler(repo subscriptionsRepo, announcer announcer) *Handler {
	return &Handler{
		repo:      repo,
		announcer: announcer,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/notifications/subscribe", handler.HandleSubscribe).Methods("POST", "OPTIONS").Name("subscribe")
	mainRouter.HandleFunc("/notifications/subscriptions", handler.HandleList).Methods("GET", "OPTIONS").Name("list-subscriptions")
	mainRouter.HandleFunc("/notifications/subscriptions/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-subscription")
	mainRouter.HandleFunc("/notifications/announce", handler.HandleAnnounce).Methods("POST", "OPTIONS").Name("announce")
}

func (handler *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.subscribe")
	defer span.End()

	var sub Subscription
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		log.Tracef("subscribe, unmarshal json params: %s", err)
		http.Error(w, "subscribe failed", http.StatusBadRequest)
		return
	}

	if sub.Endpoint == "" {
		http.Error(w, "error, endpoint empty", http.StatusBadRequest)
		return
	}

	sub.ID = uuid.NewString()
	sub.CreatedAt = time.Now()

	if err := handler.repo.Add(ctx, &sub); err != nil {
		log.Errorf("failed to add subscription: %s", err)
		http.Error(w, "error, failed to subscribe", http.StatusInternalServerError)
		return
	}

	log.Debugf("new push subscription: %s", sub.ID)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"id": %q}`, sub.ID))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.list")
	defer span.End()

	subs, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list subscriptions error: %s", err)
		http.Error(w, "failed to get subscriptions", http.StatusInternalServerError)
		return
	}

	if len(subs) == 0 {
		subs = []Subscription{}
	}

	listRespJson, err := json.Marshal(ListResponse{
		Subscriptions: subs,
		Total:         len(subs),
	})
	if err != nil {
		log.Errorf("marshal subscriptions error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listRespJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "error, id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			http.Error(w, "subscription not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete subscription %s: %s", id, err)
		http.Error(w, "error, subscription not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"deletedId": %q}`, id))
}

func (handler *Handler) HandleAnnounce(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.notifications.announce")
	defer span.End()

	var announcement Announcement
	if err := json.NewDecoder(r.Body).Decode(&announcement); err != nil {
		log.Tracef("announce, unmarshal json params: %s", err)
		http.Error(w, "announce failed", http.StatusBadRequest)
		return
	}

	if announcement.Title == "" && announcement.Message == "" {
		http.Error(w, "error, announcement empty", http.StatusBadRequest)
		return
	}

	subs, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("announce, list subscriptions: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	sent, failed := handler.announcer.Announce(ctx, announcement, subs)
	log.Debugf("announcement sent: %d ok, %d failed", sent, failed)

	announceRespJson, err := json.Marshal(AnnounceResponse{
		Sent:   sent,
		Failed: failed,
	})
	if err != nil {
		log.Errorf("marshal announce response error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, announceRespJson)
}
