package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	gslug "github.com/gosimple/slug"
	"github.com/railzwaylabs/railzway-stripe/internal/clock"
	"github.com/railzwaylabs/railzway-stripe/internal/config"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/adapters"
	"github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
	"github.com/railzwaylabs/railzway-stripe/internal/security/vault"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Vault    vault.Provider
	Gateways *adapters.Registry
	Cache    domain.SlugCache
	Metrics  *Metrics
	Config   config.Config

	MethodRepo       domain.PaymentMethodRepository
	SlugRepo         domain.SlugEntryRepository
	IntentRepo       domain.PaymentIntentRepository
	PaymentRepo      domain.PaymentRepository
	OrderRepo        domain.OrderRepository
	WalletRepo       domain.WalletRepository
	RefundReasonRepo domain.RefundReasonRepository
}

const tracerName = "stripe.service"

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	tracer   trace.Tracer
	genID    *snowflake.Node
	clock    clock.Clock
	vault    vault.Provider
	gateways *adapters.Registry
	cache    domain.SlugCache
	metrics  *Metrics

	driver           string
	refundReasonName string
	newSlug          func() (string, error)

	methodRepo       domain.PaymentMethodRepository
	slugRepo         domain.SlugEntryRepository
	intentRepo       domain.PaymentIntentRepository
	paymentRepo      domain.PaymentRepository
	orderRepo        domain.OrderRepository
	walletRepo       domain.WalletRepository
	refundReasonRepo domain.RefundReasonRepository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("stripe.service"),
		tracer:   otel.Tracer(tracerName),
		genID:    p.GenID,
		clock:    p.Clock,
		vault:    p.Vault,
		gateways: p.Gateways,
		cache:    p.Cache,
		metrics:  p.Metrics,

		driver:           p.Config.Stripe.GatewayDriver,
		refundReasonName: p.Config.Stripe.RefundReasonName,
		newSlug:          randomSlug,

		methodRepo:       p.MethodRepo,
		slugRepo:         p.SlugRepo,
		intentRepo:       p.IntentRepo,
		paymentRepo:      p.PaymentRepo,
		orderRepo:        p.OrderRepo,
		walletRepo:       p.WalletRepo,
		refundReasonRepo: p.RefundReasonRepo,
	}
}

func (s *Service) Create(ctx context.Context, input domain.CreatePaymentMethodInput) (_ *domain.PaymentMethod, err error) {
	ctx, span := s.tracer.Start(ctx, "stripe.payment_method.create",
		trace.WithAttributes(attribute.Bool("stripe.test_mode", input.Preferences.TestMode)),
	)
	defer func() { endSpan(span, err) }()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if err := input.Preferences.Validate(); err != nil {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	now := s.clock.Now(ctx)
	method := &domain.PaymentMethod{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Active:      active,
		Preferences: input.Preferences,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.sealPreferences(method); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.methodRepo.Insert(ctx, tx, method); err != nil {
			return err
		}
		entry, err := s.assignSlug(ctx, tx, method)
		if err != nil {
			return err
		}
		method.SlugEntry = entry
		return nil
	})
	if err != nil {
		s.log.Error("failed to create payment method", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	span.SetAttributes(
		attribute.String("stripe.payment_method_id", method.ID.String()),
		attribute.String("stripe.slug", method.Slug()),
	)
	s.remember(ctx, method)
	s.log.Info("payment method created",
		zap.String("payment_method_id", method.ID.String()),
		zap.String("slug", method.Slug()),
		zap.Bool("test_mode", method.TestMode()),
	)
	return method, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, input domain.UpdatePaymentMethodInput) (*domain.PaymentMethod, error) {
	var method *domain.PaymentMethod
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.methodRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if found == nil {
			return domain.ErrPaymentMethodNotFound
		}
		if err := s.openPreferences(found); err != nil {
			return err
		}

		if err := applyUpdate(found, input); err != nil {
			return err
		}
		if err := s.sealPreferences(found); err != nil {
			return err
		}
		found.UpdatedAt = s.clock.Now(ctx)

		if err := s.methodRepo.Update(ctx, tx, found); err != nil {
			return err
		}
		method = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment method updated", zap.String("payment_method_id", id.String()))
	return method, nil
}

func applyUpdate(method *domain.PaymentMethod, input domain.UpdatePaymentMethodInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return domain.ErrInvalidName
		}
		method.Name = name
	}
	if input.Description != nil {
		method.Description = strings.TrimSpace(*input.Description)
	}
	if input.Active != nil {
		method.Active = *input.Active
	}

	prefs := method.Preferences
	if input.APIKey != nil {
		prefs.APIKey = strings.TrimSpace(*input.APIKey)
	}
	if input.PublishableKey != nil {
		prefs.PublishableKey = strings.TrimSpace(*input.PublishableKey)
	}
	if input.SetupFutureUsage != nil {
		prefs.SetupFutureUsage = *input.SetupFutureUsage
	}
	if input.WebhookEndpointSigningSecret != nil {
		prefs.WebhookEndpointSigningSecret = strings.TrimSpace(*input.WebhookEndpointSigningSecret)
	}
	// Slugs are never reassigned, so a test mode flip keeps the current slug.
	if input.TestMode != nil {
		prefs.TestMode = *input.TestMode
	}
	if err := prefs.Validate(); err != nil {
		return err
	}
	method.Preferences = prefs
	return nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	var slug string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		method, err := s.methodRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if method == nil {
			return domain.ErrPaymentMethodNotFound
		}
		slug = method.Slug()

		if err := s.slugRepo.DeleteByPaymentMethodID(ctx, tx, id); err != nil {
			return err
		}
		return s.methodRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	if slug != "" {
		if err := s.cache.Delete(ctx, slug); err != nil {
			s.log.Warn("failed to evict slug from cache", zap.String("slug", slug), zap.Error(err))
		}
	}
	s.log.Info("payment method deleted", zap.String("payment_method_id", id.String()), zap.String("slug", slug))
	return nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.PaymentMethod, error) {
	method, err := s.methodRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, domain.ErrPaymentMethodNotFound
	}
	if err := s.openPreferences(method); err != nil {
		return nil, err
	}
	return method, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.PaymentMethod, error) {
	methods, err := s.methodRepo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	for _, m := range methods {
		if err := s.openPreferences(m); err != nil {
			return nil, err
		}
	}
	return methods, nil
}

// WithSlug returns the methods owning slug, at most one. Input that is not
// slug-shaped matches nothing and is never sent to the database.
func (s *Service) WithSlug(ctx context.Context, slug string) ([]*domain.PaymentMethod, error) {
	slug = strings.TrimSpace(slug)
	if !gslug.IsSlug(slug) {
		return []*domain.PaymentMethod{}, nil
	}

	if method := s.cachedMethod(ctx, slug); method != nil {
		return []*domain.PaymentMethod{method}, nil
	}

	methods, err := s.methodRepo.FindBySlug(ctx, s.db, slug)
	if err != nil {
		return nil, err
	}
	for _, m := range methods {
		if err := s.openPreferences(m); err != nil {
			return nil, err
		}
		s.remember(ctx, m)
	}
	return methods, nil
}

// cachedMethod resolves slug through the cache. Stale or failing cache
// entries fall through to the database.
func (s *Service) cachedMethod(ctx context.Context, slug string) *domain.PaymentMethod {
	id, ok, err := s.cache.Get(ctx, slug)
	if err != nil {
		s.log.Warn("slug cache lookup failed", zap.String("slug", slug), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	method, err := s.methodRepo.FindByID(ctx, s.db, id)
	if err != nil || method == nil || method.Slug() != slug {
		_ = s.cache.Delete(ctx, slug)
		return nil
	}
	if err := s.openPreferences(method); err != nil {
		return nil
	}
	return method
}

func (s *Service) remember(ctx context.Context, method *domain.PaymentMethod) {
	slug := method.Slug()
	if slug == "" {
		return
	}
	if err := s.cache.Set(ctx, slug, method.ID); err != nil {
		s.log.Warn("failed to cache slug", zap.String("slug", slug), zap.Error(err))
	}
}

func (s *Service) sealPreferences(method *domain.PaymentMethod) error {
	raw, err := json.Marshal(method.Preferences)
	if err != nil {
		return err
	}
	sealed, err := s.vault.Encrypt(raw)
	if err != nil {
		s.log.Error("failed to encrypt preferences", zap.Error(err))
		return err
	}
	method.EncryptedPreferences = datatypes.JSON(sealed)
	return nil
}

func (s *Service) openPreferences(method *domain.PaymentMethod) error {
	if len(method.EncryptedPreferences) == 0 {
		method.Preferences = domain.Preferences{}
		return nil
	}
	raw, err := s.vault.Decrypt(method.EncryptedPreferences)
	if err != nil {
		s.log.Error("failed to decrypt preferences",
			zap.String("payment_method_id", method.ID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("decrypt preferences: %w", err)
	}
	var prefs domain.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return fmt.Errorf("decode preferences: %w", err)
	}
	method.Preferences = prefs
	return nil
}

// endSpan records err on span before ending it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
