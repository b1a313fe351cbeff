package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	disbDomain "scholarship-portal-backend/internal/domain/disbursement"
	"scholarship-portal-backend/internal/usecase/calculation"
	"scholarship-portal-backend/internal/usecase/finance"
)

type FinanceHandler struct{ uc *finance.Usecase }

func NewFinanceHandler(uc *finance.Usecase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

type calculateReq struct {
	ApplicationID string                     `json:"application_id" validate:"required,appid"`
	Strategy      string                     `json:"strategy"       validate:"required,oneof=standard need_based merit_based government_scheme custom"`
	CustomFactors *calculation.CustomFactors `json:"custom_factors,omitempty"`
}

func (h *FinanceHandler) Calculate(c echo.Context) error {
	var req calculateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Code: "validation_error", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Calculate(c.Request().Context(), finance.CalculateInput{
		ApplicationID: req.ApplicationID,
		ActorID:       actorID(c),
		Strategy:      calculation.Strategy(req.Strategy),
		CustomFactors: req.CustomFactors,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type bankDetailReq struct {
	AccountNumber string `json:"account_number" validate:"required"`
	IFSC          string `json:"ifsc"           validate:"required,ifsc"`
}

type bulkDisbursementReq struct {
	ApplicationIDs []string                 `json:"application_ids" validate:"required,min=1,dive,appid"`
	Method         string                   `json:"method"          validate:"required,oneof=bank_transfer cheque cash fee_adjustment"`
	Remarks        string                   `json:"remarks"`
	BankDetails    map[string]bankDetailReq `json:"bank_details,omitempty" validate:"omitempty,dive"`
}

func (h *FinanceHandler) BulkDisburse(c echo.Context) error {
	var req bulkDisbursementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Code: "validation_error", Details: ToFieldErrors(err),
		})
	}
	bank := make(map[string]finance.BankDetail, len(req.BankDetails))
	for appID, b := range req.BankDetails {
		bank[appID] = finance.BankDetail{AccountNumber: b.AccountNumber, IFSC: b.IFSC}
	}
	dto, err := h.uc.BulkCreate(c.Request().Context(), finance.BulkCreateInput{
		ApplicationIDs: req.ApplicationIDs,
		Method:         disbDomain.Method(req.Method),
		Remarks:        req.Remarks,
		ActorID:        actorID(c),
		BankDetails:    bank,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type componentUpdateReq struct {
	ComponentType string           `json:"component_type" validate:"required,oneof=tuition_fee maintenance_allowance books_materials"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
}

type paymentStatusReq struct {
	DisbursementIDs  []string             `json:"disbursement_ids"  validate:"required,min=1"`
	ComponentUpdates []componentUpdateReq `json:"component_updates" validate:"required,min=1,dive"`
	Remarks          string               `json:"remarks"`
}

func (h *FinanceHandler) UpdatePaymentStatus(c echo.Context) error {
	var req paymentStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Code: "validation_error", Details: ToFieldErrors(err),
		})
	}
	updates := make([]finance.ComponentUpdate, 0, len(req.ComponentUpdates))
	for _, u := range req.ComponentUpdates {
		updates = append(updates, finance.ComponentUpdate{
			ComponentType: disbDomain.ComponentType(u.ComponentType),
			Amount:        u.Amount,
		})
	}
	dto, err := h.uc.UpdatePaymentStatus(c.Request().Context(), finance.PaymentStatusInput{
		DisbursementIDs:  req.DisbursementIDs,
		ComponentUpdates: updates,
		Remarks:          req.Remarks,
		ActorID:          actorID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
