package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	appDomain "scholarship-portal-backend/internal/domain/application"
	appUsecase "scholarship-portal-backend/internal/usecase/application"
)

type ApplicationHandler struct{ uc *appUsecase.Usecase }

func NewApplicationHandler(uc *appUsecase.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func actorID(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Id"))
}

type createApplicationReq struct {
	StudentID        string          `json:"student_id"        validate:"required,hex32"`
	ScholarshipType  string          `json:"scholarship_type"  validate:"required,oneof=merit need minority sc_st obc ews government_scheme"`
	Reason           string          `json:"reason"            validate:"required"`
	AmountRequested  decimal.Decimal `json:"amount_requested"  validate:"required"`
	EligibilityScore int             `json:"eligibility_score" validate:"gte=0,lte=100"`
	CGPA             decimal.Decimal `json:"cgpa"`
	CourseLevel      string          `json:"course_level"      validate:"required,oneof=undergraduate postgraduate doctoral diploma"`
	AcademicYear     string          `json:"academic_year"`
	AnnualIncome     decimal.Decimal `json:"annual_income"`
	FamilyCategory   string          `json:"family_category"`
	RuralUrban       string          `json:"rural_urban"`
}

func (h *ApplicationHandler) Create(c echo.Context) error {
	var req createApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Code: "validation_error", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), appUsecase.CreateInput{
		StudentID:        req.StudentID,
		ScholarshipType:  appDomain.ScholarshipType(req.ScholarshipType),
		Reason:           req.Reason,
		AmountRequested:  req.AmountRequested,
		EligibilityScore: req.EligibilityScore,
		Academic: appDomain.AcademicSnapshot{
			CGPA:         req.CGPA,
			CourseLevel:  req.CourseLevel,
			AcademicYear: req.AcademicYear,
		},
		Family: appDomain.FamilySnapshot{
			AnnualIncome: req.AnnualIncome,
			Category:     req.FamilyCategory,
			RuralUrban:   req.RuralUrban,
		},
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	applicationID := c.Param("application_id")
	if applicationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing application_id path param"})
	}
	dto, err := h.uc.Submit(c.Request().Context(), appUsecase.SubmitInput{
		ApplicationID: applicationID,
		ActorID:       actorID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type reviewReq struct {
	Level          string           `json:"level"           validate:"required,oneof=institute department"`
	Decision       string           `json:"decision"        validate:"required,oneof=approve reject"`
	Remarks        string           `json:"remarks"`
	ApprovedAmount *decimal.Decimal `json:"approved_amount,omitempty"`
}

func (h *ApplicationHandler) Review(c echo.Context) error {
	applicationID := c.Param("application_id")
	if applicationID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing application_id path param"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "validation failed", Code: "validation_error", Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Review(c.Request().Context(), appUsecase.ReviewInput{
		ApplicationID:  applicationID,
		ActorID:        actorID(c),
		Level:          appDomain.ReviewLevel(req.Level),
		Decision:       appDomain.Decision(req.Decision),
		Remarks:        req.Remarks,
		ApprovedAmount: req.ApprovedAmount,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Timeline(c echo.Context) error {
	dto, err := h.uc.Timeline(c.Request().Context(), c.Param("application_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
