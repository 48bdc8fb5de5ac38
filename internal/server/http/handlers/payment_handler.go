package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tulamia/orderdesk/internal/domain/errors"
	"github.com/tulamia/orderdesk/internal/server/http/dto"
	"github.com/tulamia/orderdesk/internal/usecase"
)

// PaymentHandler exposes the PayPal availability probe and capture commit.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler creates PaymentHandler instance.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Availability handles GET /api/paypal/availability. The storefront must
// disable the PayPal path and name the failed preconditions rather than
// silently offering another method.
func (h *PaymentHandler) Availability(c *gin.Context) {
	missing := h.facade.PayPalPreconditions()
	c.JSON(http.StatusOK, dto.AvailabilityResponse{
		Available: len(missing) == 0,
		Missing:   missing,
	})
}

// Capture handles POST /api/paypal/capture.
func (h *PaymentHandler) Capture(c *gin.Context) {
	var req dto.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed capture payload"})
		return
	}
	if strings.TrimSpace(req.PayPalOrderID) == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "paypalOrderId is required"})
		return
	}
	if strings.TrimSpace(req.Customer.Name) == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "customer name is required"})
		return
	}

	sess := resolveSession(c, h.facade)
	commit, err := h.facade.CapturePayPal(c.Request.Context(), sess, req.PayPalOrderID, req.Customer.Customer())
	if err != nil {
		h.renderCaptureError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CaptureResponse{
		OrderID:       commit.OrderID,
		PayPalOrderID: req.PayPalOrderID,
		Status:        commit.Capture.Status,
		Capture:       commit.Capture.Details,
	})
}

func (h *PaymentHandler) renderCaptureError(c *gin.Context, err error) {
	var declined usecase.CaptureDeclinedError
	var postCapture usecase.PostCaptureError

	switch {
	case errors.Is(err, domainErrors.ErrCheckoutNotReady):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrPayPalUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &declined):
		c.JSON(http.StatusPaymentRequired, dto.ErrorResponse{Error: declined.Error()})
	case errors.As(err, &postCapture):
		// Funds were taken but the order is unrecorded. The client must
		// not retry the capture.
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: postCapture.Error()})
	default:
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "payment capture failed"})
	}
}
