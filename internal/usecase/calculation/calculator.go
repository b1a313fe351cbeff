// Package calculation computes recommended scholarship amounts. Every
// function here is pure: no clock, no storage, no randomness. Advisory
// recommendations are assembled separately and never feed back into the
// numbers.
package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	courseMultipliers = map[string]decimal.Decimal{
		"doctoral":      decimal.RequireFromString("1.5"),
		"postgraduate":  decimal.RequireFromString("1.2"),
		"undergraduate": decimal.RequireFromString("1.0"),
		"diploma":       decimal.RequireFromString("0.8"),
	}

	schemeBaseAmounts = map[string]decimal.Decimal{
		"undergraduate": decimal.NewFromInt(30000),
		"postgraduate":  decimal.NewFromInt(40000),
		"doctoral":      decimal.NewFromInt(60000),
		"diploma":       decimal.NewFromInt(20000),
	}

	categoryMultipliers = map[string]decimal.Decimal{
		"sc":       decimal.RequireFromString("1.2"),
		"st":       decimal.RequireFromString("1.2"),
		"obc":      decimal.RequireFromString("1.1"),
		"minority": decimal.RequireFromString("1.15"),
		"general":  decimal.RequireFromString("1.0"),
	}

	achievementBonusRates = map[string]decimal.Decimal{
		"research": decimal.RequireFromString("0.2"),
		"sports":   decimal.RequireFromString("0.1"),
		"arts":     decimal.RequireFromString("0.1"),
	}
)

func cgpaMultiplier(cgpa decimal.Decimal) decimal.Decimal {
	switch {
	case cgpa.GreaterThanOrEqual(decimal.RequireFromString("9.0")):
		return decimal.RequireFromString("1.2")
	case cgpa.GreaterThanOrEqual(decimal.RequireFromString("8.0")):
		return decimal.RequireFromString("1.1")
	case cgpa.GreaterThanOrEqual(decimal.RequireFromString("7.0")):
		return decimal.RequireFromString("1.0")
	case cgpa.GreaterThanOrEqual(decimal.RequireFromString("6.0")):
		return decimal.RequireFromString("0.9")
	default:
		return decimal.RequireFromString("0.8")
	}
}

func incomeMultiplier(income decimal.Decimal) decimal.Decimal {
	switch {
	case income.LessThanOrEqual(decimal.NewFromInt(100000)):
		return decimal.RequireFromString("1.5")
	case income.LessThanOrEqual(decimal.NewFromInt(200000)):
		return decimal.RequireFromString("1.3")
	case income.LessThanOrEqual(decimal.NewFromInt(400000)):
		return decimal.RequireFromString("1.1")
	case income.LessThanOrEqual(decimal.NewFromInt(600000)):
		return decimal.RequireFromString("0.9")
	default:
		return decimal.RequireFromString("0.7")
	}
}

func courseMultiplier(level string) decimal.Decimal {
	if m, ok := courseMultipliers[level]; ok {
		return m
	}
	return decimal.RequireFromString("1.0")
}

// Calculate runs the chosen strategy over the facts and returns the rounded
// total, an exact component breakdown, and advisory recommendations.
func Calculate(strategy Strategy, facts StudentFacts, custom *CustomFactors) (*Result, error) {
	if facts.BaseAmount.IsNegative() {
		return nil, fmt.Errorf("%w: base amount must not be negative", ErrValidation)
	}

	var total decimal.Decimal
	switch strategy {
	case StrategyStandard:
		total = standard(facts)
	case StrategyNeedBased:
		total = facts.BaseAmount.Mul(incomeMultiplier(facts.FamilyIncome))
	case StrategyMeritBased:
		total = merit(facts)
	case StrategyGovernmentScheme:
		total = governmentScheme(facts)
	case StrategyCustom:
		var err error
		total, err = customCalc(facts, custom)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrValidation, strategy)
	}

	total = total.Round(2)
	return &Result{
		Strategy:        strategy,
		Total:           total,
		Breakdown:       Breakdown(total),
		Recommendations: recommendations(facts, total),
	}, nil
}

func standard(f StudentFacts) decimal.Decimal {
	return f.BaseAmount.Mul(cgpaMultiplier(f.CGPA)).Mul(courseMultiplier(f.CourseLevel))
}

// merit starts from the standard formula and adds a fixed-rate bonus per
// recognized achievement category.
func merit(f StudentFacts) decimal.Decimal {
	total := standard(f)
	for _, a := range f.Achievements {
		if rate, ok := achievementBonusRates[a]; ok {
			total = total.Add(f.BaseAmount.Mul(rate))
		}
	}
	return total
}

func governmentScheme(f StudentFacts) decimal.Decimal {
	base, ok := schemeBaseAmounts[f.CourseLevel]
	if !ok {
		base = schemeBaseAmounts["undergraduate"]
	}
	cat, ok := categoryMultipliers[f.StateCategory]
	if !ok {
		cat = categoryMultipliers["general"]
	}
	location := decimal.RequireFromString("1.0")
	if f.RuralUrban == "rural" {
		location = decimal.RequireFromString("1.1")
	}
	return base.Mul(cat).Mul(location)
}

var (
	minMultiplier = decimal.RequireFromString("0.1")
	maxMultiplier = decimal.RequireFromString("3.0")
	maxAdjustment = decimal.NewFromInt(50000)
)

func customCalc(f StudentFacts, custom *CustomFactors) (decimal.Decimal, error) {
	if custom == nil {
		return decimal.Zero, fmt.Errorf("%w: custom strategy requires custom factors", ErrValidation)
	}
	total := f.BaseAmount
	for name, v := range custom.Multipliers {
		m := decimal.NewFromFloat(v)
		if m.LessThan(minMultiplier) || m.GreaterThan(maxMultiplier) {
			return decimal.Zero, fmt.Errorf("%w: multiplier %q=%s outside [0.1, 3.0]", ErrValidation, name, m)
		}
		total = total.Mul(m)
	}
	for name, v := range custom.Adjustments {
		adj := decimal.NewFromFloat(v)
		if adj.Abs().GreaterThan(maxAdjustment) {
			return decimal.Zero, fmt.Errorf("%w: adjustment %q=%s outside [-50000, 50000]", ErrValidation, name, adj)
		}
		total = total.Add(adj)
	}
	if total.IsNegative() {
		total = decimal.Zero
	}
	return total, nil
}

func recommendations(f StudentFacts, total decimal.Decimal) []string {
	var out []string
	if f.BaseAmount.IsPositive() {
		if total.GreaterThan(f.BaseAmount.Mul(decimal.RequireFromString("1.2"))) {
			out = append(out, "calculated amount significantly exceeds the requested amount; review parameters")
		}
		if total.LessThan(f.BaseAmount.Mul(decimal.RequireFromString("0.5"))) {
			out = append(out, "calculated amount is much lower than requested; consider the need-based strategy")
		}
	}
	if f.CGPA.GreaterThanOrEqual(decimal.RequireFromString("9.0")) {
		out = append(out, "excellent academic record; consider a merit-based enhancement")
	}
	if f.FamilyIncome.IsPositive() && f.FamilyIncome.LessThanOrEqual(decimal.NewFromInt(100000)) {
		out = append(out, "income bracket qualifies for the highest need-based uplift")
	}
	return out
}
