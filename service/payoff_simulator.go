package service

import (
	"math"
	"sort"

	"debt-payoff/domain"
)

// workingDebt is the private, mutable copy of a debt used during one run.
type workingDebt struct {
	id           string
	name         string
	rank         *int
	balance      float64
	rate         float64
	minimum      float64
	interestPaid float64
	paidOff      bool
}

type outcome int

const (
	outcomePaidOff outcome = iota
	outcomeDiverging
	outcomeHorizon
)

type simulation struct {
	debts        []workingDebt
	capacity     float64
	start        domain.Date
	totalDebt    float64
	totalMinimum float64
	underwater   bool

	month         int
	totalInterest float64
	totalPaid     float64
	remaining     float64
	payoffs       []domain.PayoffEvent
	timeline      []domain.MonthRecord
}

// Simulate projects the avalanche payoff of debts with a fixed monthly capacity,
// starting on start. Debts are paid in priority-rank order (lower first, unranked
// last, ties by input order). The input slice is never modified.
func Simulate(debts []domain.Debt, monthlyCapacity float64, start domain.Date) (domain.PayoffPlan, error) {
	if len(debts) == 0 {
		return domain.PayoffPlan{}, &domain.NoActiveDebtsError{}
	}
	if monthlyCapacity < 0 || !isFinite(monthlyCapacity) {
		return domain.PayoffPlan{}, &domain.InvalidCapacityError{Capacity: monthlyCapacity}
	}
	if err := validateDebts(debts); err != nil {
		return domain.PayoffPlan{}, err
	}

	working := activeDebts(debts)
	if len(working) == 0 {
		return paidOffPlan(monthlyCapacity, start), nil
	}
	sortByPriority(working)

	sim := newSimulation(working, monthlyCapacity, start)
	result := sim.run()

	if result != outcomePaidOff && !sim.underwater {
		return domain.PayoffPlan{}, &domain.PayoffExceedsHorizonError{
			Months:    sim.month,
			Remaining: sim.remaining,
			Diverging: sim.remaining > sim.totalDebt,
		}
	}

	minimumOnly := minimumOnlyInterest(working)
	return domain.PayoffPlan{
		Summary:     sim.summary(result, minimumOnly),
		PayoffOrder: sim.payoffs,
		Timeline:    sim.timeline,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateDebts(debts []domain.Debt) error {
	for _, d := range debts {
		fields := []struct {
			name  string
			value float64
		}{
			{"balance", d.Balance},
			{"annual_rate", d.AnnualRate},
			{"minimum_payment", d.MinimumPayment},
		}
		for _, f := range fields {
			if f.value < 0 || !isFinite(f.value) {
				return &domain.InvalidDebtDataError{
					DebtID: d.ID,
					Name:   d.Name,
					Field:  f.name,
					Value:  f.value,
				}
			}
		}
	}
	return nil
}

// activeDebts copies every debt with a positive balance.
func activeDebts(debts []domain.Debt) []workingDebt {
	working := make([]workingDebt, 0, len(debts))
	for _, d := range debts {
		if d.Balance <= 0 {
			continue
		}
		var rank *int
		if d.PriorityRank != nil {
			r := *d.PriorityRank
			rank = &r
		}
		working = append(working, workingDebt{
			id:      d.ID,
			name:    d.Name,
			rank:    rank,
			balance: d.Balance,
			rate:    d.AnnualRate,
			minimum: d.MinimumPayment,
		})
	}
	return working
}

func sortByPriority(debts []workingDebt) {
	sort.SliceStable(debts, func(i, j int) bool {
		a, b := debts[i].rank, debts[j].rank
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}

func newSimulation(debts []workingDebt, capacity float64, start domain.Date) *simulation {
	own := make([]workingDebt, len(debts))
	copy(own, debts)

	s := &simulation{
		debts:    own,
		capacity: capacity,
		start:    start,
		payoffs:  []domain.PayoffEvent{},
		timeline: []domain.MonthRecord{},
	}
	for _, d := range own {
		s.totalDebt += d.balance
		s.totalMinimum += d.minimum
	}
	s.remaining = s.totalDebt
	// Sin capacidad no hay pago posible, aunque los mínimos sean cero
	s.underwater = capacity == 0 || capacity < s.totalMinimum
	return s
}

func (s *simulation) run() outcome {
	for month := 1; month <= MaxPayoffMonths; month++ {
		s.step(month)

		if s.allPaidOff() {
			return outcomePaidOff
		}
		// Solo en modo underwater: con los mínimos cubiertos el saldo puede
		// subir un tiempo y aun así saldarse antes del tope
		if s.underwater && month >= DivergenceGraceMonths && s.remaining > s.totalDebt {
			return outcomeDiverging
		}
	}
	return outcomeHorizon
}

func (s *simulation) step(month int) {
	s.month = month
	date := s.start.AddMonths(month - 1)
	interest := make([]float64, len(s.debts))
	payments := make([]float64, len(s.debts))

	// 1) Intereses: se capitalizan antes de cualquier pago del mes
	var monthInterest float64
	for i := range s.debts {
		d := &s.debts[i]
		if d.balance <= 0 {
			continue
		}
		accrued := d.balance * (d.rate / 12)
		d.balance += accrued
		d.interestPaid += accrued
		interest[i] = accrued
		monthInterest += accrued
	}

	// 2) Mínimos, o reparto proporcional si la capacidad no alcanza
	budget := s.capacity
	for i := range s.debts {
		d := &s.debts[i]
		if d.balance <= 0 || budget <= 0 {
			continue
		}
		due := d.minimum
		if s.underwater && s.totalMinimum > 0 {
			due = s.capacity * (d.minimum / s.totalMinimum)
		}
		pay := math.Min(math.Min(due, d.balance), budget)
		if pay <= 0 {
			continue
		}
		d.balance -= pay
		payments[i] += pay
		budget -= pay
	}

	// 3) Excedente (incluye restos del reparto) a la primera deuda activa
	if budget > 0 {
		if i := s.surplusTarget(); i >= 0 {
			d := &s.debts[i]
			pay := math.Min(budget, d.balance)
			d.balance -= pay
			payments[i] += pay
			budget -= pay
		}
	}

	// 4) Deudas saldadas este mes
	for i := range s.debts {
		d := &s.debts[i]
		if d.paidOff || d.balance > BalanceTolerance {
			continue
		}
		d.balance = 0
		d.paidOff = true
		s.payoffs = append(s.payoffs, domain.PayoffEvent{
			Rank:         len(s.payoffs) + 1,
			DebtID:       d.id,
			Name:         d.name,
			PayoffMonth:  month,
			PayoffDate:   date,
			InterestPaid: money(d.interestPaid),
		})
	}

	var monthPaid, remaining float64
	moves := make([]domain.DebtMonth, len(s.debts))
	for i, d := range s.debts {
		monthPaid += payments[i]
		remaining += d.balance
		moves[i] = domain.DebtMonth{
			DebtID:   d.id,
			Name:     d.name,
			Interest: money(interest[i]),
			Payment:  money(payments[i]),
			Balance:  money(d.balance),
		}
	}
	s.totalInterest += monthInterest
	s.totalPaid += monthPaid
	s.remaining = remaining

	paid := money(monthPaid)
	accrued := money(monthInterest)
	s.timeline = append(s.timeline, domain.MonthRecord{
		Month:            month,
		Date:             date,
		TotalRemaining:   money(remaining),
		TotalPaid:        paid,
		InterestPortion:  accrued,
		PrincipalPortion: paid.Sub(accrued),
		ActiveDebt:       s.activeDebtName(),
		Debts:            moves,
	})
}

// surplusTarget returns the index of the first debt, in avalanche order, that
// still owes more than the payoff tolerance, or -1.
func (s *simulation) surplusTarget() int {
	for i, d := range s.debts {
		if d.balance > BalanceTolerance {
			return i
		}
	}
	for i, d := range s.debts {
		if d.balance > 0 {
			return i
		}
	}
	return -1
}

func (s *simulation) activeDebtName() string {
	for _, d := range s.debts {
		if d.balance > 0 {
			return d.name
		}
	}
	return AllPaidOffLabel
}

func (s *simulation) allPaidOff() bool {
	for _, d := range s.debts {
		if !d.paidOff {
			return false
		}
	}
	return true
}
