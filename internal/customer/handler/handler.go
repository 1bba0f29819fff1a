package handler

import (
	"context"

	"github.com/fekuna/omnipos-stock-ledger/internal/auth"
	"github.com/fekuna/omnipos-stock-ledger/internal/customer"
	"github.com/fekuna/omnipos-stock-ledger/internal/customer/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	stockv1 "github.com/fekuna/omnipos-stock-ledger/pkg/api/stockv1"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type CustomerHandler struct {
	stockv1.UnimplementedCustomerServiceServer
	uc     customer.UseCase
	logger logger.ZapLogger
}

func NewCustomerHandler(uc customer.UseCase, log logger.ZapLogger) *CustomerHandler {
	return &CustomerHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CustomerHandler) CreateCustomer(ctx context.Context, req *stockv1.CreateCustomerRequest) (*stockv1.Customer, error) {
	user := auth.FromContext(ctx)
	location := req.Location
	if location == "" {
		location = user.Location
	}
	if !user.CanAccess(location) {
		return nil, status.Error(codes.PermissionDenied, "access denied")
	}

	c, err := h.uc.CreateCustomer(ctx, &dto.CreateCustomerInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Location:     location,
		TaxNumber:    req.TaxNumber,
		CreditLimit:  req.CreditLimit,
		PaymentTerms: req.PaymentTerms,
		UserID:       user.Actor(),
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			h.logger.Error("failed to create customer", zap.Error(err))
		}
		return nil, apperror.ToGRPC(err)
	}
	return mapCustomerToProto(c), nil
}

func (h *CustomerHandler) GetCustomer(ctx context.Context, req *stockv1.GetCustomerRequest) (*stockv1.Customer, error) {
	c, err := h.uc.GetCustomer(ctx, req.Id)
	if err != nil {
		return nil, apperror.ToGRPC(err)
	}
	if !auth.FromContext(ctx).CanAccess(c.Location) {
		return nil, status.Error(codes.PermissionDenied, "access denied")
	}
	return mapCustomerToProto(c), nil
}

func (h *CustomerHandler) ListCustomers(ctx context.Context, req *stockv1.ListCustomersRequest) (*stockv1.ListCustomersResponse, error) {
	customers, total, err := h.uc.ListCustomers(ctx, &dto.CustomerFilters{
		Location: auth.FromContext(ctx).Scope(req.Location),
		Search:   req.Search,
		Page:     int(req.Page),
		PageSize: int(req.PageSize),
	})
	if err != nil {
		return nil, apperror.ToGRPC(err)
	}

	out := make([]*stockv1.Customer, len(customers))
	for i := range customers {
		out[i] = mapCustomerToProto(&customers[i])
	}
	return &stockv1.ListCustomersResponse{Customers: out, Total: int32(total)}, nil
}

// UpdateCustomer requires access to the customer's current site and to the site it moves to.
func (h *CustomerHandler) UpdateCustomer(ctx context.Context, req *stockv1.UpdateCustomerRequest) (*stockv1.Customer, error) {
	user := auth.FromContext(ctx)
	current, err := h.uc.GetCustomer(ctx, req.Id)
	if err != nil {
		return nil, apperror.ToGRPC(err)
	}
	if !user.CanAccess(current.Location) || (req.Location != nil && !user.CanAccess(*req.Location)) {
		return nil, status.Error(codes.PermissionDenied, "access denied")
	}

	c, err := h.uc.UpdateCustomer(ctx, &dto.UpdateCustomerInput{
		ID:           req.Id,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Location:     req.Location,
		TaxNumber:    req.TaxNumber,
		CreditLimit:  req.CreditLimit,
		PaymentTerms: req.PaymentTerms,
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			h.logger.Error("failed to update customer", zap.String("customer_id", req.Id), zap.Error(err))
		}
		return nil, apperror.ToGRPC(err)
	}
	return mapCustomerToProto(c), nil
}

func mapCustomerToProto(c *model.Customer) *stockv1.Customer {
	return &stockv1.Customer{
		Id:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		City:         c.City,
		Location:     c.Location,
		TaxNumber:    c.TaxNumber,
		CreditLimit:  c.CreditLimit,
		PaymentTerms: c.PaymentTerms,
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
