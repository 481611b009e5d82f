package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/merchware/shopd/internal/shop/service"
	"github.com/merchware/shopd/pkg/httpx"
	"github.com/merchware/shopd/pkg/slogx"
)

type OrdersHandler struct {
	OrderService *service.OrderService
}

// HandlePlace places a new order for the caller.
//
//	@Summary	Place an order
//	@Description	Creates an order in the "pending" status. Stock is checked and
//	@Description	reserved in a single transaction; the total reflects prices at
//	@Description	placement time.
//	@Tags		Orders
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		placeOrderRequest	true	"Items to order"
//	@Success	201		{object}	OrderResponse
//	@Failure	400		{object}	httpx.ErrorBody	"Empty order, bad quantity or insufficient stock"
//	@Failure	404		{object}	httpx.ErrorBody	"Product missing or unavailable"
//	@Router		/api/v1/orders [post].
func (h *OrdersHandler) HandlePlace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := principalFromCtx(ctx)
	if !ok {
		writeBearerError(w, "missing bearer token")
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	items := make([]service.OrderItemParams, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.OrderItemParams{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	o, err := h.OrderService.PlaceOrder(ctx, principal.ID, items)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder), errors.Is(err, service.ErrBadQuantity):
			httpx.WriteError(w, http.StatusBadRequest, "order items are invalid")
		case errors.Is(err, service.ErrProductUnavailable):
			httpx.WriteError(w, http.StatusNotFound, "product not found or unavailable")
		case errors.Is(err, service.ErrInsufficientStock):
			httpx.WriteError(w, http.StatusBadRequest, "not enough stock for one of the items")
		default:
			log.Error("placing order failed", "user_id", principal.ID, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toOrderResponse(o))
}

// HandleList lists the caller's own orders.
//
//	@Summary	List own orders
//	@Tags		Orders
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		OrderResponse
//	@Failure	401	{object}	httpx.ErrorBody
//	@Router		/api/v1/orders [get].
func (h *OrdersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := principalFromCtx(ctx)
	if !ok {
		writeBearerError(w, "missing bearer token")
		return
	}

	orders, err := h.OrderService.ListOrdersForUser(ctx, principal.ID)
	if err != nil {
		log.Error("listing orders failed", "user_id", principal.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns one of the caller's orders. Someone else's order id
// reads as 404, not 403.
//
//	@Summary	Get an order
//	@Tags		Orders
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Order id"
//	@Success	200	{object}	OrderResponse
//	@Failure	404	{object}	httpx.ErrorBody
//	@Router		/api/v1/orders/{id} [get].
func (h *OrdersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := principalFromCtx(ctx)
	if !ok {
		writeBearerError(w, "missing bearer token")
		return
	}

	id := r.PathValue("id")
	o, err := h.OrderService.GetOrderForUser(ctx, id, principal.ID, principal.IsAdmin)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "order not found")
			return
		}
		log.Error("loading order failed", "order_id", id, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOrderResponse(o))
}

// HandleSetStatus moves an order to a named status (admin only).
//
//	@Summary	Set order status
//	@Tags		Orders
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Order id"
//	@Param		body	body		setOrderStatusRequest	true	"Target status name"
//	@Success	200		{object}	OrderResponse
//	@Failure	400		{object}	httpx.ErrorBody	"Unknown status name"
//	@Failure	404		{object}	httpx.ErrorBody
//	@Router		/api/v1/orders/{id}/status [put].
func (h *OrdersHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req setOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	o, err := h.OrderService.SetOrderStatus(ctx, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownStatus):
			httpx.WriteError(w, http.StatusBadRequest, "unknown order status")
		case errors.Is(err, service.ErrOrderNotFound):
			httpx.WriteError(w, http.StatusNotFound, "order not found")
		default:
			log.Error("setting order status failed", "order_id", id, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOrderResponse(o))
}

// HandleCancel cancels one of the caller's pending orders.
//
//	@Summary	Cancel an order
//	@Description	Only pending orders can be cancelled; reserved stock is returned
//	@Description	in the same transaction.
//	@Tags		Orders
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Order id"
//	@Success	204
//	@Failure	400	{object}	httpx.ErrorBody	"Order is no longer pending"
//	@Failure	404	{object}	httpx.ErrorBody
//	@Router		/api/v1/orders/{id} [delete].
func (h *OrdersHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := principalFromCtx(ctx)
	if !ok {
		writeBearerError(w, "missing bearer token")
		return
	}

	id := r.PathValue("id")
	if err := h.OrderService.CancelOrder(ctx, id, principal.ID, principal.IsAdmin); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			httpx.WriteError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrNotCancellable):
			httpx.WriteError(w, http.StatusBadRequest, "only pending orders can be cancelled")
		default:
			log.Error("cancelling order failed", "order_id", id, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
