package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/merchware/shopd/internal/shop/service"
	"github.com/merchware/shopd/pkg/httpx"
	"github.com/merchware/shopd/pkg/slogx"
)

type ProductsHandler struct {
	ProductService *service.ProductService
}

// HandleCreate adds a product to the catalog (admin only).
//
//	@Summary	Create a product
//	@Tags		Products
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		createProductRequest	true	"Catalog fields"
//	@Success	201		{object}	ProductResponse
//	@Failure	400		{object}	httpx.ErrorBody	"Validation failure or duplicate name"
//	@Failure	403		{object}	httpx.ErrorBody
//	@Router		/api/v1/products [post].
func (h *ProductsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.ProductService.CreateProduct(ctx, service.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductExists) {
			httpx.WriteError(w, http.StatusBadRequest, "a product with this name already exists")
			return
		}
		log.Error("creating product failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toProductResponse(p))
}

// HandleList lists catalog products (public).
//
//	@Summary	List products
//	@Tags		Products
//	@Produce	json
//	@Param		offset	query		int	false	"Rows to skip"		default(0)
//	@Param		limit	query		int	false	"Max rows to return"	default(10)
//	@Success	200		{array}		ProductResponse
//	@Router		/api/v1/products [get].
func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	offset, limit := parsePageParams(r)
	products, err := h.ProductService.ListProducts(ctx, offset, limit)
	if err != nil {
		log.Error("listing products failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns a single product (public).
//
//	@Summary	Get a product
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		string	true	"Product id"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	httpx.ErrorBody
//	@Router		/api/v1/products/{id} [get].
func (h *ProductsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")
	p, err := h.ProductService.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "product not found")
			return
		}
		log.Error("loading product failed", "product_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProductResponse(p))
}

// HandleUpdate applies a partial update (admin only).
//
//	@Summary	Update a product
//	@Tags		Products
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Product id"
//	@Param		body	body		updateProductRequest	true	"Fields to change"
//	@Success	200		{object}	ProductResponse
//	@Failure	400		{object}	httpx.ErrorBody	"Validation failure or duplicate name"
//	@Failure	404		{object}	httpx.ErrorBody
//	@Router		/api/v1/products/{id} [put].
func (h *ProductsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	p, err := h.ProductService.UpdateProduct(ctx, id, service.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductExists):
			httpx.WriteError(w, http.StatusBadRequest, "a product with this name already exists")
		case errors.Is(err, service.ErrProductNotFound):
			httpx.WriteError(w, http.StatusNotFound, "product not found")
		default:
			log.Error("updating product failed", "product_id", id, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProductResponse(p))
}

// HandleDelete removes a product (admin only).
//
//	@Summary	Delete a product
//	@Tags		Products
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Product id"
//	@Success	204
//	@Failure	404	{object}	httpx.ErrorBody
//	@Router		/api/v1/products/{id} [delete].
func (h *ProductsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id := r.PathValue("id")
	if err := h.ProductService.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "product not found")
			return
		}
		log.Error("deleting product failed", "product_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
