package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"ledger-core/internal/errors"
)

// Clock supplies the current time. Injected so limit-window tests are
// deterministic.
type Clock func() time.Time

// LimitConstraint tracks rolling daily/monthly spend totals against
// configured caps. A nil cap means no limit on that window. Counters reset
// when Validate observes a calendar-day boundary; the monthly counter
// additionally resets on a month boundary. A month boundary always implies
// a day boundary, so the day comparison gates both resets.
type LimitConstraint struct {
	dailyLimit   *decimal.Decimal
	monthlyLimit *decimal.Decimal

	dailyTotal   decimal.Decimal
	monthlyTotal decimal.Decimal
	lastChecked  time.Time
	now          Clock
}

func NewLimitConstraint(dailyLimit, monthlyLimit *decimal.Decimal, now Clock) *LimitConstraint {
	if now == nil {
		now = time.Now
	}
	return &LimitConstraint{
		dailyLimit:   dailyLimit,
		monthlyLimit: monthlyLimit,
		dailyTotal:   decimal.Zero,
		monthlyTotal: decimal.Zero,
		lastChecked:  now(),
		now:          now,
	}
}

func (l *LimitConstraint) resetIfNeeded() {
	today := l.now()
	ty, tm, td := today.Date()
	ly, lm, ld := l.lastChecked.Date()
	if ty != ly || tm != lm || td != ld {
		l.dailyTotal = decimal.Zero
		if ty != ly || tm != lm {
			l.monthlyTotal = decimal.Zero
		}
		l.lastChecked = today
	}
}

// Validate checks whether amount would break either cap. It rolls the
// windows forward but never touches the running totals.
func (l *LimitConstraint) Validate(amount decimal.Decimal) error {
	l.resetIfNeeded()

	if l.dailyLimit != nil && l.dailyTotal.Add(amount).GreaterThan(*l.dailyLimit) {
		return errors.ErrDailyLimitExceeded
	}
	if l.monthlyLimit != nil && l.monthlyTotal.Add(amount).GreaterThan(*l.monthlyLimit) {
		return errors.ErrMonthlyLimitExceeded
	}
	return nil
}

// Record accumulates amount into both windows. Call it once, and only after
// the operation Validate cleared has actually succeeded.
func (l *LimitConstraint) Record(amount decimal.Decimal) {
	l.dailyTotal = l.dailyTotal.Add(amount)
	l.monthlyTotal = l.monthlyTotal.Add(amount)
}

func (l *LimitConstraint) DailyTotal() decimal.Decimal {
	return l.dailyTotal
}

func (l *LimitConstraint) MonthlyTotal() decimal.Decimal {
	return l.monthlyTotal
}

func (l *LimitConstraint) Clone() *LimitConstraint {
	cp := *l
	return &cp
}
