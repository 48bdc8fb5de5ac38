package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tulamia/orderdesk/internal/domain/errors"
	"github.com/tulamia/orderdesk/internal/domain/model"
	"github.com/tulamia/orderdesk/internal/server/http/dto"
	"github.com/tulamia/orderdesk/internal/session"
)

// StoreHandler serves the public storefront: menu, recent orders, the
// session cart and non-PayPal checkout.
type StoreHandler struct {
	facade StoreFacade
}

// NewStoreHandler creates StoreHandler instance.
func NewStoreHandler(facade StoreFacade) *StoreHandler {
	return &StoreHandler{facade: facade}
}

// Menu handles GET /api/menu.
func (h *StoreHandler) Menu(c *gin.Context) {
	items, err := h.facade.Menu(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "menu unavailable"})
		return
	}

	locale := requestLocale(c)
	views := make([]dto.MenuItemResponse, 0, len(items))
	for _, item := range items {
		views = append(views, dto.NewMenuItemResponse(item, locale))
	}
	c.JSON(http.StatusOK, views)
}

// Orders handles GET /api/orders.
func (h *StoreHandler) Orders(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "orders unavailable"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Cart handles GET /api/cart.
func (h *StoreHandler) Cart(c *gin.Context) {
	sess := resolveSession(c, h.facade)
	h.renderCart(c, sess)
}

// AddItem handles POST /api/cart/items.
func (h *StoreHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "item id required"})
		return
	}

	sess := resolveSession(c, h.facade)
	h.facade.AddItem(sess, req.ID)
	h.renderCart(c, sess)
}

// UpdateItem handles PUT /api/cart/items/:id.
func (h *StoreHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "quantity required"})
		return
	}

	sess := resolveSession(c, h.facade)
	h.facade.UpdateItem(sess, c.Param("id"), req.Quantity)
	h.renderCart(c, sess)
}

// RemoveItem handles DELETE /api/cart/items/:id.
func (h *StoreHandler) RemoveItem(c *gin.Context) {
	sess := resolveSession(c, h.facade)
	h.facade.RemoveItem(sess, c.Param("id"))
	h.renderCart(c, sess)
}

// ClearCart handles DELETE /api/cart.
func (h *StoreHandler) ClearCart(c *gin.Context) {
	sess := resolveSession(c, h.facade)
	h.facade.ClearCart(sess)
	h.renderCart(c, sess)
}

// Checkout handles POST /api/checkout.
func (h *StoreHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed checkout payload"})
		return
	}

	sess := resolveSession(c, h.facade)
	order, err := h.facade.Checkout(c.Request.Context(), sess, req.Customer.Customer(), model.PaymentProvider(req.Provider))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrCheckoutNotReady), errors.Is(err, domainErrors.ErrInvalidProvider):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrSubmissionInFlight):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "order could not be saved"})
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *StoreHandler) renderCart(c *gin.Context, sess *session.Session) {
	fulfillment := model.Fulfillment(c.Query("fulfillment"))
	if fulfillment != model.FulfillmentDelivery {
		fulfillment = model.FulfillmentPickup
	}

	lines, totals, err := h.facade.CartView(c.Request.Context(), sess, fulfillment)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "cart could not be priced"})
		return
	}
	c.JSON(http.StatusOK, dto.CartResponse{Items: lines, Totals: totals})
}
