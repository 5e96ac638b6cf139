package vendors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vaadhorim/portal/internal/search"
	"github.com/vaadhorim/portal/internal/telemetry/tracing"
	"github.com/vaadhorim/portal/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type vendorsRepo interface {
	Add(ctx context.Context, vendor *Vendor) (*Vendor, error)
	Get(ctx context.Context, id int) (*Vendor, error)
	Update(ctx context.Context, vendor *Vendor) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]Vendor, error)
}

type ListResponse struct {
	Vendors []Vendor `json:"vendors"`
	Total   int      `json:"total"`
}

type Handler struct {
	repo vendorsRepo
}

func NewHandler(repo vendorsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/vendors", handler.HandleList).Methods("GET", "OPTIONS").Name("list-vendors")
	mainRouter.HandleFunc("/vendors", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-vendor")
	mainRouter.HandleFunc("/vendors", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-vendor")
	mainRouter.HandleFunc("/vendors/search", handler.HandleSearch).Methods("GET", "OPTIONS").Name("search-vendors")
	mainRouter.HandleFunc("/vendors/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-vendor")
	mainRouter.HandleFunc("/vendors/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-vendor")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.vendors.new")
	defer span.End()

	var vendor Vendor
	if err := json.NewDecoder(r.Body).Decode(&vendor); err != nil {
		log.Tracef("new vendor, unmarshal json params: %s", err)
		http.Error(w, "add vendor failed", http.StatusBadRequest)
		return
	}

	if vendor.Name == "" {
		http.Error(w, "error, vendor name empty", http.StatusBadRequest)
		return
	}
	if !vendor.RatingIsValid() {
		http.Error(w, "error, vendor rating invalid", http.StatusBadRequest)
		return
	}
	if vendor.CreatedAt.IsZero() {
		vendor.CreatedAt = time.Now()
	}

	addedVendor, err := handler.repo.Add(ctx, &vendor)
	if err != nil {
		log.Errorf("failed to add new vendor [%s]: %s", vendor.Name, err)
		http.Error(w, "error, failed to add new vendor", http.StatusInternalServerError)
		return
	}

	addedVendorJson, err := json.Marshal(addedVendor)
	if err != nil {
		log.Errorf("failed to marshal new vendor: %s", err)
		http.Error(w, "error, failed to add new vendor", http.StatusInternalServerError)
		return
	}

	log.Debugf("new vendor added: %d", addedVendor.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedVendorJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.vendors.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	vendor, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrVendorNotFound) {
			http.Error(w, "vendor not found", http.StatusNotFound)
			return
		}
		log.Errorf("get vendor %d: %s", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	vendorJson, err := json.Marshal(vendor)
	if err != nil {
		log.Errorf("marshal vendor error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, vendorJson)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.vendors.update")
	defer span.End()

	var vendor Vendor
	if err := json.NewDecoder(r.Body).Decode(&vendor); err != nil {
		log.Tracef("update vendor, unmarshal json params: %s", err)
		http.Error(w, "update vendor failed", http.StatusBadRequest)
		return
	}

	if vendor.ID <= 0 {
		http.Error(w, "error, vendor id invalid", http.StatusBadRequest)
		return
	}
	if !vendor.RatingIsValid() {
		http.Error(w, "error, vendor rating invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &vendor); err != nil {
		if errors.Is(err, ErrVendorNotFound) {
			http.Error(w, "vendor not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update vendor [%d]: %s", vendor.ID, err)
		http.Error(w, "error, failed to update vendor", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"updatedId": %d}`, vendor.ID))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.vendors.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrVendorNotFound) {
			http.Error(w, "vendor not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete vendor %d: %s", id, err)
		http.Error(w, "error, vendor not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"deletedId": %d}`, id))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.vendors.list")
	defer span.End()

	vendors, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list vendors error: %s", err)
		http.Error(w, "failed to get vendors", http.StatusInternalServerError)
		return
	}

	handler.writeVendorList(w, vendors)
}

// HandleSearch matches the query against vendor names and categories,
// best matches first.
func (handler *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.vendors.search")
	defer span.End()

	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "error, query empty", http.StatusBadRequest)
		return
	}

	vendors, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("search vendors error: %s", err)
		http.Error(w, "failed to search vendors", http.StatusInternalServerError)
		return
	}

	targets := make([]string, len(vendors))
	for i, vendor := range vendors {
		targets[i] = vendor.Name + " " + vendor.Category
	}

	matches := search.Rank(query, targets)
	matched := make([]Vendor, 0, len(matches))
	for _, match := range matches {
		matched = append(matched, vendors[match.Index])
	}

	handler.writeVendorList(w, matched)
}

func (handler *Handler) writeVendorList(w http.ResponseWriter, vendors []Vendor) {
	if len(vendors) == 0 {
		vendors = []Vendor{}
	}

	listRespJson, err := json.Marshal(ListResponse{
		Vendors: vendors,
		Total:   len(vendors),
	})
	if err != nil {
		log.Errorf("marshal vendors error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listRespJson)
}
