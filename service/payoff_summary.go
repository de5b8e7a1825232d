package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"debt-payoff/domain"
)

// summary builds the plan totals. DebtFreeDate is the date of the month in
// which the last debt is paid off, the same date as its payoff event.
func (s *simulation) summary(result outcome, minimumOnly float64) domain.PayoffSummary {
	paidOff := result == outcomePaidOff

	summary := domain.PayoffSummary{
		TotalDebt:            money(s.totalDebt),
		MonthlyCapacity:      money(s.capacity),
		TotalMinimumPayments: money(s.totalMinimum),
		TotalInterestPaid:    money(s.totalInterest),
		InterestSaved:        money(math.Max(0, minimumOnly-s.totalInterest)),
		TotalPaid:            money(s.totalPaid),
		IsUnderwater:         s.underwater,
		DebtPaidOff:          paidOff,
		RemainingDebt:        decimal.Zero,
	}

	if paidOff {
		months := s.month
		date := s.start.AddMonths(months - 1)
		summary.MonthsToDebtFree = &months
		summary.DebtFreeDate = &date
	} else {
		summary.RemainingDebt = money(s.remaining)
	}

	if s.underwater {
		warning := underwaterWarning(s.capacity, s.totalMinimum, paidOff)
		summary.Warning = &warning
	}
	return summary
}

func underwaterWarning(capacity, totalMinimum float64, paidOff bool) string {
	if totalMinimum == 0 {
		return "There is no monthly capacity and no minimum payments. " +
			"At this payment level, your debt will never be paid off. " +
			"Set a monthly capacity above $0 to start making progress."
	}
	if paidOff {
		return fmt.Sprintf(
			"Monthly capacity (%s) is less than minimum payments (%s). "+
				"You'll pay off your debt, but it will take significantly longer and cost more in interest. "+
				"Consider increasing payments to at least %s to accelerate payoff.",
			formatMoney(capacity), formatMoney(totalMinimum), formatMoney(totalMinimum))
	}
	return fmt.Sprintf(
		"Monthly capacity (%s) is less than minimum payments (%s). "+
			"At this payment level, your debt will continue to grow. "+
			"Increase your monthly capacity to at least %s to start making progress.",
		formatMoney(capacity), formatMoney(totalMinimum), formatMoney(totalMinimum))
}

// paidOffPlan is the result for a debt list where nothing is owed anymore.
func paidOffPlan(capacity float64, start domain.Date) domain.PayoffPlan {
	months := 0
	date := start
	return domain.PayoffPlan{
		Summary: domain.PayoffSummary{
			TotalDebt:            decimal.Zero,
			MonthlyCapacity:      money(capacity),
			TotalMinimumPayments: decimal.Zero,
			MonthsToDebtFree:     &months,
			DebtFreeDate:         &date,
			TotalInterestPaid:    decimal.Zero,
			InterestSaved:        decimal.Zero,
			TotalPaid:            decimal.Zero,
			DebtPaidOff:          true,
			RemainingDebt:        decimal.Zero,
		},
		PayoffOrder: []domain.PayoffEvent{},
		Timeline:    []domain.MonthRecord{},
	}
}

// minimumOnlyInterest is the interest paid if only the contractual minimums
// were ever paid, with no surplus. It stops at the horizon or once the balance
// is clearly growing, so for such portfolios it is a lower bound.
func minimumOnlyInterest(debts []workingDebt) float64 {
	own := make([]workingDebt, len(debts))
	copy(own, debts)

	var original float64
	for _, d := range own {
		original += d.balance
	}

	var interest float64
	for month := 1; month <= MaxPayoffMonths; month++ {
		var remaining float64
		for i := range own {
			d := &own[i]
			if d.balance <= BalanceTolerance {
				d.balance = 0
				continue
			}
			accrued := d.balance * (d.rate / 12)
			d.balance += accrued
			interest += accrued
			d.balance -= math.Min(d.minimum, d.balance)
			remaining += d.balance
		}
		if remaining <= BalanceTolerance {
			break
		}
		if month >= DivergenceGraceMonths && remaining > original {
			break
		}
	}
	return interest
}
