package discount

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/hollis/threadbare/internal/store"
	"github.com/shopspring/decimal"
)

// Service manages discount lifecycle and code verification.
type Service struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewService(st store.Store, logger *slog.Logger) *Service {
	return &Service{store: st, logger: logger, now: time.Now}
}

// Create validates and persists a new discount. The code is normalized
// before the uniqueness check, and discounts are active unless the payload
// says otherwise.
func (s *Service) Create(ctx context.Context, params domain.DiscountParams) (domain.Discount, error) {
	const op = "discount.Create"

	if err := domain.Validate(op, &params); err != nil {
		return domain.Discount{}, err
	}
	if err := checkRules(op, params); err != nil {
		return domain.Discount{}, err
	}

	d := domain.Discount{
		Code:        NormalizeCode(params.Code),
		Type:        params.Type,
		Value:       params.Value,
		MinSubtotal: params.MinSubtotal,
		MaxDiscount: params.MaxDiscount,
		StartsAt:    params.StartsAt,
		EndsAt:      params.EndsAt,
		IsActive:    params.IsActive == nil || *params.IsActive,
	}
	if d.Type == domain.DiscountTypeFlat {
		// Max cap is defined only for percentage discounts.
		d.MaxDiscount = nil
	}

	created, err := s.store.CreateDiscount(ctx, d)
	if err != nil {
		return domain.Discount{}, err
	}

	s.logger.InfoContext(ctx, "discount created",
		slog.String("code", created.Code),
		slog.String("type", string(created.Type)),
	)
	return created, nil
}

// Update replaces the discount identified by id with the given params.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params domain.DiscountParams) (domain.Discount, error) {
	const op = "discount.Update"

	if err := domain.Validate(op, &params); err != nil {
		return domain.Discount{}, err
	}
	if err := checkRules(op, params); err != nil {
		return domain.Discount{}, err
	}

	existing, err := s.store.GetDiscountByID(ctx, id)
	if err != nil {
		return domain.Discount{}, err
	}

	existing.Code = NormalizeCode(params.Code)
	existing.Type = params.Type
	existing.Value = params.Value
	existing.MinSubtotal = params.MinSubtotal
	existing.MaxDiscount = params.MaxDiscount
	existing.StartsAt = params.StartsAt
	existing.EndsAt = params.EndsAt
	if params.IsActive != nil {
		existing.IsActive = *params.IsActive
	}
	if existing.Type == domain.DiscountTypeFlat {
		existing.MaxDiscount = nil
	}

	return s.store.UpdateDiscount(ctx, existing)
}

// Get resolves an id-shaped identity as a surrogate id first, falling back
// to a normalized code lookup.
func (s *Service) Get(ctx context.Context, identity string) (domain.Discount, error) {
	if domain.LooksLikeID(identity) {
		id, _ := uuid.Parse(identity)
		d, err := s.store.GetDiscountByID(ctx, id)
		if err == nil {
			return d, nil
		}
		if domain.ErrorCode(err) != domain.ENOTFOUND {
			return domain.Discount{}, err
		}
	}
	return s.store.GetDiscountByCode(ctx, NormalizeCode(identity))
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteDiscount(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Discount, error) {
	return s.store.ListDiscounts(ctx)
}

// Verify resolves a code against a subtotal and returns the discount with
// the amount it grants. Unknown codes, codes outside their active window,
// and codes granting nothing for this subtotal fail distinctly.
func (s *Service) Verify(ctx context.Context, code string, subtotal decimal.Decimal) (domain.Discount, decimal.Decimal, error) {
	d, err := s.store.GetDiscountByCode(ctx, NormalizeCode(code))
	if err != nil {
		return domain.Discount{}, decimal.Zero, err
	}
	if !IsLive(d, s.now()) {
		return domain.Discount{}, decimal.Zero, domain.ErrDiscountNotLive
	}
	amount := CalculateAmount(d, subtotal)
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.Discount{}, decimal.Zero, domain.ErrDiscountNotApplicable
	}
	return d, amount, nil
}

// checkRules enforces the creation-time invariants that struct tags cannot
// express.
func checkRules(op string, params domain.DiscountParams) error {
	if params.Value.IsNegative() {
		return domain.Invalid(op, "discount value must not be negative")
	}
	if params.Type == domain.DiscountTypePercentage && params.Value.GreaterThan(decimal.NewFromInt(100)) {
		return domain.Invalid(op, "percentage discount value must not exceed 100")
	}
	if params.StartsAt != nil && params.EndsAt != nil && params.EndsAt.Before(*params.StartsAt) {
		return domain.Invalid(op, "endsAt must not be before startsAt")
	}
	return nil
}
