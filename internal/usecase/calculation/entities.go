package calculation

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrValidation = errors.New("invalid calculation input")

type Strategy string

const (
	StrategyStandard         Strategy = "standard"
	StrategyNeedBased        Strategy = "need_based"
	StrategyMeritBased       Strategy = "merit_based"
	StrategyGovernmentScheme Strategy = "government_scheme"
	StrategyCustom           Strategy = "custom"
)

// StudentFacts are the immutable snapshot fields the calculator reads. They
// are validated once at the boundary; the formulas never re-check them.
type StudentFacts struct {
	BaseAmount    decimal.Decimal
	CGPA          decimal.Decimal
	CourseLevel   string
	FamilyIncome  decimal.Decimal
	StateCategory string
	RuralUrban    string
	Achievements  []string
}

// CustomFactors apply only to the custom strategy.
type CustomFactors struct {
	Multipliers map[string]float64 `json:"multipliers,omitempty"`
	Adjustments map[string]float64 `json:"adjustments,omitempty"`
}

type Component struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

type Result struct {
	Strategy        Strategy        `json:"strategy"`
	Total           decimal.Decimal `json:"total"`
	Breakdown       []Component     `json:"breakdown"`
	Recommendations []string        `json:"recommendations"`
}
