package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tulamia/orderdesk/internal/domain/errors"
	"github.com/tulamia/orderdesk/internal/domain/model"
	"github.com/tulamia/orderdesk/internal/server/http/dto"
)

// AdminHandler processes admin login and catalog/order mutations.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler creates AdminHandler instance.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed login payload"})
		return
	}

	token, err := h.facade.Authenticate(req.Login, req.Password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "invalid credentials"})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Token: token})
}

// UpsertMenuItem handles PUT /api/admin/menu.
func (h *AdminHandler) UpsertMenuItem(c *gin.Context) {
	var req dto.UpsertMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed menu item payload"})
		return
	}

	item, err := h.facade.UpsertCatalogItem(c.Request.Context(), CurrentCapability(c), req.Item())
	if err != nil {
		h.renderMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem handles DELETE /api/admin/menu/:id.
func (h *AdminHandler) DeleteMenuItem(c *gin.Context) {
	if err := h.facade.DeleteCatalogItem(c.Request.Context(), CurrentCapability(c), c.Param("id")); err != nil {
		h.renderMutationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetOrderStatus handles PATCH /api/admin/orders/:id/status.
func (h *AdminHandler) SetOrderStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed status payload"})
		return
	}

	order, err := h.facade.SetOrderPaymentStatus(c.Request.Context(), CurrentCapability(c), c.Param("id"), model.PaymentStatus(req.Status))
	if err != nil {
		h.renderMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/admin/orders/:id.
func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	if err := h.facade.DeleteOrder(c.Request.Context(), CurrentCapability(c), c.Param("id")); err != nil {
		h.renderMutationError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) renderMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrUnauthorized):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrInvalidMenuItem), errors.Is(err, domainErrors.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrRemoteUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
	default:
		c.Status(http.StatusInternalServerError)
	}
}
