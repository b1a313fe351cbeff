package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"scholarship-portal-backend/internal/usecase/dbt"
)

type DBTHandler struct{ sim *dbt.Simulator }

func NewDBTHandler(sim *dbt.Simulator) *DBTHandler { return &DBTHandler{sim: sim} }

type dbtTransferReq struct {
	DisbursementIDs []string `json:"disbursement_ids" validate:"required,min=1"`
	Remarks         string   `json:"remarks"`
}

func (h *DBTHandler) SimulateTransfer(c echo.Context) error {
	var req dbtTransferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Code: "validation_error", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.sim.SimulateTransfer(c.Request().Context(), dbt.Input{
		DisbursementIDs: req.DisbursementIDs,
		Remarks:         req.Remarks,
		ActorID:         actorID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
