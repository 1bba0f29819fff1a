package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/customer"
	"github.com/fekuna/omnipos-stock-ledger/internal/customer/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type customerUseCase struct {
	repo   customer.Repository
	logger logger.ZapLogger
}

func NewCustomerUseCase(repo customer.Repository, log logger.ZapLogger) customer.UseCase {
	return &customerUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *customerUseCase) CreateCustomer(ctx context.Context, input *dto.CreateCustomerInput) (*model.Customer, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	location := strings.TrimSpace(input.Location)

	if name == "" {
		return nil, apperror.Validation("name is required")
	}
	if err := validEmail(email); err != nil {
		return nil, err
	}
	if err := concreteLocation(location); err != nil {
		return nil, err
	}
	if input.CreditLimit.IsNegative() {
		return nil, apperror.Validation("credit limit must not be negative")
	}

	now := time.Now().UTC()

	c := &model.Customer{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		City:         strings.TrimSpace(input.City),
		Location:     location,
		TaxNumber:    strings.TrimSpace(input.TaxNumber),
		CreditLimit:  input.CreditLimit,
		PaymentTerms: input.PaymentTerms,
		CreatedBy:    input.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}
	uc.logger.Info("customer created", zap.String("customer_id", c.ID), zap.String("location", c.Location))
	return c, nil
}

func (uc *customerUseCase) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	return uc.repo.FindCustomerByID(ctx, id)
}

func validEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return apperror.Validation("invalid email %q", email)
	}
	return nil
}

func concreteLocation(location string) error {
	if location == "" || location == "all" {
		return apperror.Validation("a concrete location is required")
	}
	return nil
}

func (uc *customerUseCase) ListCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error) {
	if filters.Page < 0 || filters.PageSize < 0 {
		return nil, 0, apperror.Validation("page and page size must not be negative")
	}
	return uc.repo.FindCustomers(ctx, filters)
}

// UpdateCustomer applies the non-nil fields. Orders keep the location they were placed at.
func (uc *customerUseCase) UpdateCustomer(ctx context.Context, input *dto.UpdateCustomerInput) (*model.Customer, error) {
	c, err := uc.repo.FindCustomerByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.Validation("name must not be empty")
		}
		c.Name = name
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if err := validEmail(email); err != nil {
			return nil, err
		}
		c.Email = email
	}
	if input.Location != nil {
		location := strings.TrimSpace(*input.Location)
		if err := concreteLocation(location); err != nil {
			return nil, err
		}
		c.Location = location
	}
	if input.CreditLimit != nil {
		if input.CreditLimit.IsNegative() {
			return nil, apperror.Validation("credit limit must not be negative")
		}
		c.CreditLimit = *input.CreditLimit
	}
	for _, f := range []struct {
		src *string
		dst *string
	}{
		{input.Phone, &c.Phone},
		{input.Address, &c.Address},
		{input.City, &c.City},
		{input.TaxNumber, &c.TaxNumber},
		{input.PaymentTerms, &c.PaymentTerms},
	} {
		if f.src != nil {
			*f.dst = strings.TrimSpace(*f.src)
		}
	}
	c.UpdatedAt = time.Now().UTC()

	if err := uc.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}
	uc.logger.Info("customer updated", zap.String("customer_id", c.ID), zap.String("location", c.Location))
	return c, nil
}
