package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"localizei-backend/internal/domain"
	"localizei-backend/internal/service"
)

type StoreHandler struct {
	storeSvc service.StoreService
}

func NewStoreHandler(storeSvc service.StoreService) *StoreHandler {
	return &StoreHandler{storeSvc: storeSvc}
}

func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, err := h.storeSvc.GetStore(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapStore(store))
}

type storeRequest struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	CashbackPercent int64  `json:"cashback_percent"`
	Active          *bool  `json:"active"`
}

func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req storeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}
	if req.CashbackPercent < 0 || req.CashbackPercent > 100 {
		writeBadRequest(w, "cashback_percent must be between 0 and 100")
		return
	}

	store := &domain.Store{
		Name:            req.Name,
		Category:        req.Category,
		CashbackPercent: req.CashbackPercent,
		Active:          true,
	}
	if req.Active != nil {
		store.Active = *req.Active
	}

	if err := h.storeSvc.CreateStore(r.Context(), userIDFromContext(r.Context()), store); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapStore(store))
}

func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req storeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.CashbackPercent < 0 || req.CashbackPercent > 100 {
		writeBadRequest(w, "cashback_percent must be between 0 and 100")
		return
	}

	merchantID := userIDFromContext(r.Context())
	store, err := h.storeSvc.GetStore(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if req.Name != "" {
		store.Name = req.Name
	}
	if req.Category != "" {
		store.Category = req.Category
	}
	if req.CashbackPercent > 0 {
		store.CashbackPercent = req.CashbackPercent
	}
	if req.Active != nil {
		store.Active = *req.Active
	}

	if err := h.storeSvc.UpdateStore(r.Context(), merchantID, store); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapStore(store))
}

type storeListResponse struct {
	Stores []storeResponse `json:"stores"`
}

func (h *StoreHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	stores, err := h.storeSvc.ListMerchantStores(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]storeResponse, len(stores))
	for i := range stores {
		out[i] = mapStore(&stores[i])
	}
	writeJSON(w, http.StatusOK, storeListResponse{Stores: out})
}
