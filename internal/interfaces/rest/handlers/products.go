package handlers

import (
	"net/http"

	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest"
)

func (h *Handlers) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	products, err := h.products.ListProducts(r.Context(), limit, offset)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	rest.RespondWithJSON(w, http.StatusOK, out)
}

func (h *Handlers) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := h.decode(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	product, err := h.products.CreateProduct(r.Context(), req.Name, req.Description, req.Price)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.RespondWithJSON(w, http.StatusCreated, toProductResponse(product))
}
