package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	paymentdomain "github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"github.com/samber/lo"
)

// paymentMethodResponse never exposes the secret key or webhook secret.
type paymentMethodResponse struct {
	ID                       string    `json:"id"`
	Name                     string    `json:"name"`
	Description              string    `json:"description"`
	Active                   bool      `json:"active"`
	Slug                     string    `json:"slug"`
	PublishableKey           string    `json:"publishable_key"`
	SetupFutureUsage         string    `json:"setup_future_usage"`
	TestMode                 bool      `json:"test_mode"`
	HasAPIKey                bool      `json:"has_api_key"`
	HasWebhookSecret         bool      `json:"has_webhook_secret"`
	PartialName              string    `json:"partial_name"`
	SourceRequired           bool      `json:"source_required"`
	PaymentProfilesSupported bool      `json:"payment_profiles_supported"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

func toPaymentMethodResponse(m *paymentdomain.PaymentMethod) paymentMethodResponse {
	return paymentMethodResponse{
		ID:                       m.ID.String(),
		Name:                     m.Name,
		Description:              m.Description,
		Active:                   m.Active,
		Slug:                     m.Slug(),
		PublishableKey:           m.Preferences.PublishableKey,
		SetupFutureUsage:         m.Preferences.SetupFutureUsage,
		TestMode:                 m.TestMode(),
		HasAPIKey:                m.Preferences.APIKey != "",
		HasWebhookSecret:         m.Preferences.WebhookEndpointSigningSecret != "",
		PartialName:              paymentdomain.PartialNameFor(paymentdomain.PartialDefault),
		SourceRequired:           m.SourceRequired(),
		PaymentProfilesSupported: m.PaymentProfilesSupported(),
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

func toPaymentMethodResponses(methods []*paymentdomain.PaymentMethod) []paymentMethodResponse {
	return lo.Map(methods, func(m *paymentdomain.PaymentMethod, _ int) paymentMethodResponse {
		return toPaymentMethodResponse(m)
	})
}

func parseID(c *gin.Context, param string) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param(param)))
	if err != nil || id <= 0 {
		AbortWithError(c, newValidationError(param, "invalid_id", "invalid id"))
		return 0, false
	}
	return id, true
}

// CreatePaymentMethod stores a Stripe configuration and assigns its slug.
// POST /api/payment-methods
func (s *Server) CreatePaymentMethod(c *gin.Context) {
	var req paymentdomain.CreatePaymentMethodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	method, err := s.paymentSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, toPaymentMethodResponse(method))
}

// ListPaymentMethods lists every method, or the owner of ?slug=.
// GET /api/payment-methods
func (s *Server) ListPaymentMethods(c *gin.Context) {
	var (
		methods []*paymentdomain.PaymentMethod
		err     error
	)
	if slug, ok := c.GetQuery("slug"); ok {
		methods, err = s.paymentSvc.WithSlug(c.Request.Context(), slug)
	} else {
		methods, err = s.paymentSvc.List(c.Request.Context())
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, toPaymentMethodResponses(methods))
}

// GET /api/payment-methods/:id
func (s *Server) GetPaymentMethod(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	method, err := s.paymentSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, toPaymentMethodResponse(method))
}

// PATCH /api/payment-methods/:id
func (s *Server) UpdatePaymentMethod(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req paymentdomain.UpdatePaymentMethodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	method, err := s.paymentSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, toPaymentMethodResponse(method))
}

// DELETE /api/payment-methods/:id
func (s *Server) DeletePaymentMethod(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := s.paymentSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPaymentIntent fetches a live intent through the method's gateway.
// GET /api/payment-methods/:id/intents/:intent_id
func (s *Server) GetPaymentIntent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	intent, err := s.paymentSvc.RetrieveIntent(c.Request.Context(), id, c.Param("intent_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, intent)
}
