package groceries

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

type groceriesRepo interface {
	AddList(ctx context.Context, list *List) (*List, error)
	GetList(ctx context.Context, id int) (*List, error)
	DeleteList(ctx context.Context, id int) error
	Lists(ctx context.Context) ([]List, error)
	AddItem(ctx context.Context, item *Item) (*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id int) error
}

type ListsResponse struct {
	Lists []List `json:"lists"`
	Total int    `json:"total"`
}

type Handler struct {
	repo groceriesRepo
}

func NewHandler(repo groceriesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/groceries", handler.HandleLists).Methods("GET", "OPTIONS").Name("grocery-lists")
	mainRouter.HandleFunc("/groceries", handler.HandleAddList).Methods("POST", "OPTIONS").Name("new-grocery-list")
	// public read-only link shared with parents
	mainRouter.HandleFunc("/groceries/list/{id}", handler.HandleGetList).Methods("GET", "OPTIONS").Name("get-grocery-list")
	mainRouter.HandleFunc("/groceries/{id}", handler.HandleDeleteList).Methods("DELETE", "OPTIONS").Name("delete-grocery-list")
	mainRouter.HandleFunc("/groceries/{id}/items", handler.HandleAddItem).Methods("POST", "OPTIONS").Name("new-grocery-item")
	mainRouter.HandleFunc("/groceries/items", handler.HandleUpdateItem).Methods("PUT", "OPTIONS").Name("update-grocery-item")
	mainRouter.HandleFunc("/groceries/items/{id}", handler.HandleDeleteItem).Methods("DELETE", "OPTIONS").Name("delete-grocery-item")
}

func (handler *Handler) HandleAddList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.groceries.newList")
	defer span.End()

	var list List
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		log.Tracef("new grocery list, unmarshal json params: %s", err)
		http.Error(w, "add grocery list failed", http.StatusBadRequest)
		return
	}

	if list.Name == "" {
		http.Error(w, "error, list name empty", http.StatusBadRequest)
		return
	}
	if list.CreatedAt.IsZero() {
		list.CreatedAt = time.Now()
	}

	addedList, err := handler.repo.AddList(ctx, &list)
	if err != nil {
		log.Errorf("failed to add new grocery list [%s]: %s", list.Name, err)
		http.Error(w, "error, failed to add new grocery list", http.StatusInternalServerError)
		return
	}

	addedListJson, err := json.Marshal(addedList)
	if err != nil {
		log.Errorf("failed to marshal new grocery list: %s", err)
		http.Error(w, "error, failed to add new grocery list", http.StatusInternalServerError)
		return
	}

	log.Debugf("new grocery list added: %d", addedList.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedListJson, http.StatusCreated)
}

func (handler *Handler) HandleGetList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.groceries.getList")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	list, err := handler.repo.GetList(ctx, id)
	if err != nil {
		if errors.Is(err, ErrListNotFound) {
			http.Error(w, "grocery list not found", http.StatusNotFound)
			return
		}
		log.Errorf("get grocery list %d: %s", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(list.Items) == 0 {
		list.Items = []Item{}
	}

	listJson, err := json.Marshal(list)
	if err != nil {
		log.Errorf("marshal grocery list error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listJson)
}

func (handler *Handler) HandleDeleteList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.groceries.deleteList")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.DeleteList(ctx, id); err != nil {
		if errors.Is(err, ErrListNotFound) {
			http.Error(w, "grocery list not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete grocery list %d: %s", id, err)
		http.Error(w, "error, grocery list not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"deletedId": %d}`, id))
}

func (handler *Handler) HandleLists(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.groceries.lists")
	defer span.End()

	lists, err := handler.repo.Lists(ctx)
	if err != nil {
		log.Errorf("list grocery lists error: %s", err)
		http.Error(w, "failed to get grocery lists", http.StatusInternalServerError)
		return
	}

	if len(lists) == 0 {
		lists = []List{}
	}

	listsRespJson, err := json.Marshal(ListsResponse{
		Lists: lists,
		Total: len(lists),
	})
	if err != nil {
		log.Errorf("marshal grocery lists error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listsRespJson)
}

func (handler *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.groceries.newItem")
	defer span.End()

	listID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, list id NaN", http.StatusBadRequest)
		return
	}

	var item Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Tracef("new grocery item, unmarshal json params: %s", err)
		http.Error(w, "add grocery item failed", http.StatusBadRequest)
		return
	}

	if item.Name == "" {
		http.Error(w, "error, item name empty", http.StatusBadRequest)
		return
	}
	item.ListID = listID

	// reject items for lists that do not exist
	if _, err := handler.repo.GetList(ctx, listID); err != nil {
		if errors.Is(err, ErrListNotFound) {
			http.Error(w, "grocery list not found", http.StatusNotFound)
			return
		}
		log.Errorf("new item, get grocery list %d: %s", listID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	addedItem, err := handler.repo.AddItem(ctx, &item)
	if err != nil {
		log.Errorf("failed to add grocery item [%s]: %s", item.Name, err)
		http.Error(w, "error, failed to add grocery item", http.StatusInternalServerError)
		return
	}

	addedItemJson, err := json.Marshal(addedItem)
	if err != nil {
		log.Errorf("failed to marshal new grocery item: %s", err)
		http.Error(w, "error, failed to add grocery item", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedItemJson, http.StatusCreated)
}

func (handler *Handler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.groceries.updateItem")
	defer span.End()

	var item Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Tracef("update grocery item, unmarshal json params: %s", err)
		http.Error(w, "update grocery item failed", http.StatusBadRequest)
		return
	}

	if item.ID <= 0 {
		http.Error(w, "error, item id invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.UpdateItem(ctx, &item); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			http.Error(w, "grocery item not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update grocery item [%d]: %s", item.ID, err)
		http.Error(w, "error, failed to update grocery item", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"updatedId": %d}`, item.ID))
}

func (handler *Handler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.groceries.deleteItem")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			http.Error(w, "grocery item not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete grocery item %d: %s", id, err)
		http.Error(w, "error, grocery item not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"deletedId": %d}`, id))
}
