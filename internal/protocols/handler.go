package protocols

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
	"go.opentelemetry.io/otel/codes"
)

type protocolsRepo interface {
	Add(ctx context.Context, protocol *Protocol) (*Protocol, error)
	Get(ctx context.Context, id int) (*Protocol, error)
	Update(ctx context.Context, protocol *Protocol) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]Protocol, error)
}

type actionItemsExtractor interface {
	Extract(ctx context.Context, body string) ([]ActionItem, error)
}

type ListResponse struct {
	Protocols []Protocol `json:"protocols"`
	Total     int        `json:"total"`
}

type ExtractResponse struct {
	ProtocolID  int          `json:"protocol_id"`
	ActionItems []ActionItem `json:"action_items"`
}

type Handler struct {
	repo      protocolsRepo
	extractor actionItemsExtractor
}

func NewHandler(repo protocolsRepo, extractor actionItemsExtractor) *Handler {
	return &Handler{
		repo:      repo,
		extractor: extractor,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/protocols", handler.HandleList).Methods("GET", "OPTIONS").Name("list-protocols")
	mainRouter.HandleFunc("/protocols", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-protocol")
	mainRouter.HandleFunc("/protocols", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-protocol")
	mainRouter.HandleFunc("/protocols/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-protocol")
	mainRouter.HandleFunc("/protocols/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-protocol")
	mainRouter.HandleFunc("/protocols/{id}/extract", handler.HandleExtract).Methods("POST", "OPTIONS").Name("extract-protocol")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocols.new")
	defer span.End()

	var protocol Protocol
	if err := json.NewDecoder(r.Body).Decode(&protocol); err != nil {
		log.Tracef("new protocol, unmarshal json params: %s", err)
		http.Error(w, "add protocol failed", http.StatusBadRequest)
		return
	}

	if protocol.Title == "" {
		http.Error(w, "error, protocol title empty", http.StatusBadRequest)
		return
	}
	if protocol.MeetingDate.IsZero() {
		http.Error(w, "error, meeting date empty", http.StatusBadRequest)
		return
	}
	if protocol.CreatedAt.IsZero() {
		protocol.CreatedAt = time.Now()
	}

	addedProtocol, err := handler.repo.Add(ctx, &protocol)
	if err != nil {
		log.Errorf("failed to add new protocol [%s]: %s", protocol.Title, err)
		http.Error(w, "error, failed to add new protocol", http.StatusInternalServerError)
		return
	}

	addedProtocolJson, err := json.Marshal(addedProtocol)
	if err != nil {
		log.Errorf("failed to marshal new protocol: %s", err)
		http.Error(w, "error, failed to add new protocol", http.StatusInternalServerError)
		return
	}

	log.Debugf("new protocol added: %d", addedProtocol.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedProtocolJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocols.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	protocol, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProtocolNotFound) {
			http.Error(w, "protocol not found", http.StatusNotFound)
			return
		}
		log.Errorf("get protocol %d: %s", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	protocolJson, err := json.Marshal(protocol)
	if err != nil {
		log.Errorf("marshal protocol error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, protocolJson)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocols.update")
	defer span.End()

	var protocol Protocol
	if err := json.NewDecoder(r.Body).Decode(&protocol); err != nil {
		log.Tracef("update protocol, unmarshal json params: %s", err)
		http.Error(w, "update protocol failed", http.StatusBadRequest)
		return
	}

	if protocol.ID <= 0 {
		http.Error(w, "error, protocol id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &protocol); err != nil {
		if errors.Is(err, ErrProtocolNotFound) {
			http.Error(w, "protocol not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update protocol [%d]: %s", protocol.ID, err)
		http.Error(w, "error, failed to update protocol", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"updatedId": %d}`, protocol.ID))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocols.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrProtocolNotFound) {
			http.Error(w, "protocol not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete protocol %d: %s", id, err)
		http.Error(w, "error, protocol not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"deletedId": %d}`, id))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocols.list")
	defer span.End()

	protocols, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list protocols error: %s", err)
		http.Error(w, "failed to get protocols", http.StatusInternalServerError)
		return
	}

	if len(protocols) == 0 {
		protocols = []Protocol{}
	}

	listRespJson, err := json.Marshal(ListResponse{
		Protocols: protocols,
		Total:     len(protocols),
	})
	if err != nil {
		log.Errorf("marshal protocols error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listRespJson)
}

func (handler *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.protocols.extract")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	protocol, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProtocolNotFound) {
			http.Error(w, "protocol not found", http.StatusNotFound)
			return
		}
		log.Errorf("extract, get protocol %d: %s", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	actionItems, err := handler.extractor.Extract(ctx, protocol.Body)
	if err != nil {
		if errors.Is(err, ErrNoActionItems) {
			actionItems = []ActionItem{}
		} else {
			span.SetStatus(codes.Error, fmt.Sprintf("extract action items: %s", err))
			log.Errorf("extract action items from protocol %d: %s", id, err)
			http.Error(w, "error, extraction failed", http.StatusInternalServerError)
			return
		}
	}

	extractRespJson, err := json.Marshal(ExtractResponse{
		ProtocolID:  protocol.ID,
		ActionItems: actionItems,
	})
	if err != nil {
		log.Errorf("marshal extract response error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	span.SetStatus(codes.Ok, "")
	log.Debugf("protocol %d: extracted %d action items", id, len(actionItems))
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, extractRespJson)
}
