package domain

import "github.com/shopspring/decimal"

// Debt is a snapshot of one loan supplied by the debt registry.
type Debt struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Balance        float64 `json:"balance"`
	AnnualRate     float64 `json:"annual_rate"` // fracción, 0.0699 = 6.99%
	MinimumPayment float64 `json:"minimum_payment"`
	PriorityRank   *int    `json:"priority_rank,omitempty"` // nil = sin rango, se paga al final
}

// Ranked is a small helper for building debts with a priority rank.
func Ranked(rank int) *int {
	return &rank
}

// PlanSettings is what the plan store keeps for the active plan.
type PlanSettings struct {
	MonthlyCapacity float64 `json:"monthly_capacity"`
	StartDate       Date    `json:"start_date"`
}

type PayoffEvent struct {
	Rank         int             `json:"rank"`
	DebtID       string          `json:"debt_id"`
	Name         string          `json:"name"`
	PayoffMonth  int             `json:"payoff_month"`
	PayoffDate   Date            `json:"payoff_date"`
	InterestPaid decimal.Decimal `json:"interest_paid"`
}

// DebtMonth is the movement of a single debt within one simulated month.
type DebtMonth struct {
	DebtID   string          `json:"debt_id"`
	Name     string          `json:"name"`
	Interest decimal.Decimal `json:"interest"`
	Payment  decimal.Decimal `json:"payment"`
	Balance  decimal.Decimal `json:"balance"`
}

type MonthRecord struct {
	Month            int             `json:"month"`
	Date             Date            `json:"month_date"`
	TotalRemaining   decimal.Decimal `json:"total_debt_remaining"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	ActiveDebt       string          `json:"active_loan"`
	Debts            []DebtMonth     `json:"debts"`
}

type PayoffSummary struct {
	TotalDebt            decimal.Decimal `json:"total_debt"`
	MonthlyCapacity      decimal.Decimal `json:"monthly_capacity"`
	TotalMinimumPayments decimal.Decimal `json:"total_minimum_payments"`
	MonthsToDebtFree     *int            `json:"months_to_debt_free"`
	DebtFreeDate         *Date           `json:"debt_free_date"`
	TotalInterestPaid    decimal.Decimal `json:"total_interest_paid"`
	InterestSaved        decimal.Decimal `json:"interest_saved"`
	TotalPaid            decimal.Decimal `json:"total_paid"`
	IsUnderwater         bool            `json:"is_underwater"`
	DebtPaidOff          bool            `json:"debt_paid_off"`
	RemainingDebt        decimal.Decimal `json:"remaining_debt"`
	Warning              *string         `json:"warning"`
}

// PayoffPlan is the full result of one simulation run.
type PayoffPlan struct {
	Summary     PayoffSummary `json:"summary"`
	PayoffOrder []PayoffEvent `json:"payoff_order"`
	Timeline    []MonthRecord `json:"timeline"`
}

// DebtSummary is the quick overview shown before a full projection.
type DebtSummary struct {
	TotalDebt       decimal.Decimal `json:"total_debt"`
	TotalMinimums   decimal.Decimal `json:"total_minimums"`
	MonthlyCapacity decimal.Decimal `json:"monthly_capacity"`
	ExtraPayment    decimal.Decimal `json:"extra_payment"`
	ActiveDebts     int             `json:"active_loans"`
}

// CapacityScenario is one what-if run of the simulator with a different capacity.
type CapacityScenario struct {
	MonthlyCapacity decimal.Decimal `json:"monthly_capacity"`
	Summary         *PayoffSummary  `json:"summary,omitempty"`
	Error           string          `json:"error,omitempty"`
}
