package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"scholarship-portal-backend/internal/domain/actor"
	appDomain "scholarship-portal-backend/internal/domain/application"
	disbDomain "scholarship-portal-backend/internal/domain/disbursement"
	"scholarship-portal-backend/internal/usecase/calculation"
)

// domainError maps usecase errors onto stable codes and HTTP statuses. The
// message carries entity id and state context; internals stay out of it.
func domainError(c echo.Context, err error) error {
	var (
		status = http.StatusInternalServerError
		code   = "internal_error"
	)
	switch {
	case errors.Is(err, appDomain.ErrValidation), errors.Is(err, calculation.ErrValidation):
		status, code = http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, appDomain.ErrTerminalState):
		status, code = http.StatusConflict, "terminal_state"
	case errors.Is(err, appDomain.ErrInvalidTransition):
		status, code = http.StatusConflict, "invalid_transition"
	case errors.Is(err, appDomain.ErrStaleEntity), errors.Is(err, disbDomain.ErrStaleEntity):
		status, code = http.StatusConflict, "concurrent_update"
	case errors.Is(err, disbDomain.ErrOverpayment):
		status, code = http.StatusUnprocessableEntity, "overpayment"
	case errors.Is(err, disbDomain.ErrInvalidBankDetails):
		status, code = http.StatusUnprocessableEntity, "invalid_bank_details"
	case errors.Is(err, disbDomain.ErrUnknownComponent):
		status, code = http.StatusNotFound, "unknown_component"
	case errors.Is(err, disbDomain.ErrAlreadyDisbursed):
		status, code = http.StatusConflict, "already_disbursed"
	case errors.Is(err, appDomain.ErrNotFound), errors.Is(err, disbDomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, actor.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	}
	return c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
