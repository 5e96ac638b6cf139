package committees

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

type membersRepo interface {
	Add(ctx context.Context, member *Member) (*Member, error)
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]Member, error)
}

type ListResponse struct {
	Members []Member `json:"members"`
	Total   int      `json:"total"`
}

type Handler struct {
	repo membersRepo
}

func NewHandler(repo membersRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/committees", handler.HandleList).Methods("GET", "OPTIONS").Name("list-members")
	mainRouter.HandleFunc("/committees", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-member")
	mainRouter.HandleFunc("/committees", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-member")
	mainRouter.HandleFunc("/committees/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-member")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.committees.new")
	defer span.End()

	var member Member
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		log.Tracef("new member, unmarshal json params: %s", err)
		http.Error(w, "add member failed", http.StatusBadRequest)
		return
	}

	if member.Name == "" {
		http.Error(w, "error, member name empty", http.StatusBadRequest)
		return
	}
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now()
	}

	addedMember, err := handler.repo.Add(ctx, &member)
	if err != nil {
		log.Errorf("failed to add new member [%s]: %s", member.Name, err)
		http.Error(w, "error, failed to add new member", http.StatusInternalServerError)
		return
	}

	addedMemberJson, err := json.Marshal(addedMember)
	if err != nil {
		log.Errorf("failed to marshal new member: %s", err)
		http.Error(w, "error, failed to add new member", http.StatusInternalServerError)
		return
	}

	log.Debugf("new committee member added: %d", addedMember.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedMemberJson, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.committees.update")
	defer span.End()

	var member Member
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		log.Tracef("update member, unmarshal json params: %s", err)
		http.Error(w, "update member failed", http.StatusBadRequest)
		return
	}

	if member.ID <= 0 {
		http.Error(w, "error, member id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &member); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			http.Error(w, "member not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update member [%d]: %s", member.ID, err)
		http.Error(w, "error, failed to update member", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"updatedId": %d}`, member.ID))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.committees.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			http.Error(w, "member not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete member %d: %s", id, err)
		http.Error(w, "error, member not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"deletedId": %d}`, id))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.committees.list")
	defer span.End()

	members, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list members error: %s", err)
		http.Error(w, "failed to get members", http.StatusInternalServerError)
		return
	}

	if len(members) == 0 {
		members = []Member{}
	}

	listRespJson, err := json.Marshal(ListResponse{
		Members: members,
		Total:   len(members),
	})
	if err != nil {
		log.Errorf("marshal members error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listRespJson)
}
