package server

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type refundRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// GET /api/payments/:id/intent
func (s *Server) GetPaymentIntentReference(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ref, err := s.paymentSvc.ResolvePaymentIntent(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, ref)
}

// RefundPayment refunds part or all of a payment in major currency units.
// POST /api/payments/:id/refunds
func (s *Server) RefundPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req refundRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount == nil {
		AbortWithError(c, newValidationError("amount", "invalid_amount", "amount is required"))
		return
	}

	result, err := s.paymentSvc.Refund(c.Request.Context(), id, *req.Amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, result)
}

// GET /api/orders/:id/previous-sources
func (s *Server) ListPreviousSources(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	sources, err := s.paymentSvc.PreviousSourcesForOrder(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, sources)
}

// GET /api/refund-reason
func (s *Server) GetRefundReason(c *gin.Context) {
	reason, err := s.paymentSvc.RefundReason(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, reason)
}
