package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vaadhorim/portal/internal/telemetry/metrics"
	"github.com/vaadhorim/portal/internal/telemetry/tracing"
	"github.com/vaadhorim/portal/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const maxQuestionLength = 2000

type askService interface {
	Ask(ctx context.Context, question string) (string, error)
}

type usageTracker interface {
	Allow(ctx context.Context) (bool, error)
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type Handler struct {
	service askService
	usage   usageTracker
	metrics *metrics.Manager
}

func NewHandler(service askService, usage usageTracker, metrics *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		usage:   usage,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/assistant/ask", handler.HandleAsk).Methods("POST", "OPTIONS").Name("assistant-ask")
}

func (handler *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.assistant.ask")
	defer span.End()

	var askReq AskRequest
	if err := json.NewDecoder(r.Body).Decode(&askReq); err != nil {
		log.Tracef("assistant ask, unmarshal json params: %s", err)
		http.Error(w, "ask failed", http.StatusBadRequest)
		return
	}

	if askReq.Question == "" {
		http.Error(w, "error, question empty", http.StatusBadRequest)
		return
	}
	if len(askReq.Question) > maxQuestionLength {
		http.Error(w, "error, question too long", http.StatusBadRequest)
		return
	}

	allowed, err := handler.usage.Allow(ctx)
	if err != nil {
		log.Errorf("assistant usage check: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !allowed {
		handler.metrics.CounterAssistantRejected.Inc()
		http.Error(w, "daily question quota reached, try again tomorrow", http.StatusTooManyRequests)
		return
	}

	answer, err := handler.service.Ask(ctx, askReq.Question)
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("assistant ask: %s", err))
		log.Errorf("assistant ask: %s", err)
		http.Error(w, "error, assistant unavailable", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterAssistantQueries.Inc()

	askRespJson, err := json.Marshal(AskResponse{Answer: answer})
	if err != nil {
		log.Errorf("marshal assistant answer error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	span.SetStatus(codes.Ok, "")
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, askRespJson)
}
