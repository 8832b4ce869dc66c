package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/service"
)

type catalogHandler struct {
	catalog   service.CatalogService
	inventory service.InventoryService
}

type addProductRequest struct {
	Product  domain.Product   `json:"product"`
	Variants []domain.Variant `json:"variants"`
}

func (h *catalogHandler) addProduct(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	var req addProductRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	product, err := h.catalog.AddProduct(r.Context(), claims.UserID, &req.Product, req.Variants)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

type productResponse struct {
	Product  *domain.Product  `json:"product"`
	Variants []domain.Variant `json:"variants"`
}

func (h *catalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, variants, err := h.catalog.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, productResponse{Product: product, Variants: variants})
}

func (h *catalogHandler) updateVariant(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	var variant domain.Variant
	if err := decodeBody(r, &variant); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	variant.ID = mux.Vars(r)["id"]
	if err := h.catalog.UpdateVariant(r.Context(), claims.UserID, &variant); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, variant)
}

type pagedResponse struct {
	Items any   `json:"items"`
	Total int32 `json:"total"`
	Page  int32 `json:"page"`
}

func (h *catalogHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	products, total, err := h.catalog.SearchProducts(r.Context(), r.URL.Query().Get("q"), r.URL.Query().Get("category"), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: products, Total: total, Page: page})
}

func (h *catalogHandler) listVendorProducts(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r)
	page, pageSize := pagination(r)
	products, total, err := h.catalog.ListVendorProducts(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: products, Total: total, Page: page})
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

// checkAvailability is an advisory pre-checkout check; the authoritative
// answer happens under the variant row lock at reservation time.
func (h *catalogHandler) checkAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := time.Parse(time.RFC3339, q.Get("start"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid start time"})
		return
	}
	end, err := time.Parse(time.RFC3339, q.Get("end"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid end time"})
		return
	}
	quantity, err := strconv.ParseInt(q.Get("quantity"), 10, 32)
	if err != nil || quantity < 1 {
		quantity = 1
	}
	available, err := h.inventory.IsAvailable(r.Context(), mux.Vars(r)["id"], start, end, int32(quantity))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, availabilityResponse{Available: available})
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
