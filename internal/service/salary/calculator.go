package salary

import (
	"time"

	"github.com/opspay/payroll-backend-go/internal/domain/attendance"
	"github.com/opspay/payroll-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// DeductionAbsence is the key used in slip deduction detail for the flat
// per-absence penalty applied to fixed-contract employees.
const DeductionAbsence = "absence_penalty"

// Result is the computed salary breakdown for one employee over one period.
type Result struct {
	Gross           decimal.Decimal
	Net             decimal.Decimal
	Deduction       decimal.Decimal
	DeductionDetail map[string]decimal.Decimal
	WorkedDays      int
	AbsentDays      int
	WorkedHours     decimal.Decimal
}

// Calculator turns a period of attendance records plus an employee's contract
// parameters into a salary breakdown. It performs no I/O and is deterministic
// for identical input.
type Calculator struct {
	absencePenalty decimal.Decimal
}

// NewCalculator builds a calculator with the flat per-absence penalty charged
// against fixed salaries. The penalty is an administrative charge, not a
// pro-rated share of the base salary.
func NewCalculator(absencePenalty decimal.Decimal) *Calculator {
	return &Calculator{absencePenalty: absencePenalty}
}

// Compute calculates the gross/net breakdown for emp over [periodStart,
// periodEnd]. Records outside the period are ignored. Returns
// employee.ErrMissingRate when the contract-relevant parameter is absent or
// not positive; the caller must surface that before creating any pay slip.
func (c *Calculator) Compute(emp employee.Employee, records []attendance.AttendanceRecord, periodStart, periodEnd time.Time) (Result, error) {
	rate, err := emp.Rate()
	if err != nil {
		return Result{}, err
	}

	inPeriod := filterByPeriod(records, periodStart, periodEnd)

	result := Result{
		DeductionDetail: map[string]decimal.Decimal{},
		WorkedHours:     decimal.Zero,
	}
	for _, record := range inPeriod {
		if record.Status.WorkedDay() {
			result.WorkedDays++
		}
		if record.Status == attendance.StatusAbsent {
			result.AbsentDays++
		}
		result.WorkedHours = result.WorkedHours.Add(workedHours(record))
	}

	switch emp.ContractType {
	case employee.ContractTypeFixed:
		result.Gross = rate
		deduction := c.absencePenalty.Mul(decimal.NewFromInt(int64(result.AbsentDays)))
		if deduction.GreaterThan(result.Gross) {
			deduction = result.Gross
		}
		result.Deduction = deduction
		if deduction.IsPositive() {
			result.DeductionDetail[DeductionAbsence] = deduction
		}
		result.Net = result.Gross.Sub(deduction)

	case employee.ContractTypeDailyRate:
		result.Gross = rate.Mul(decimal.NewFromInt(int64(result.WorkedDays)))
		result.Deduction = decimal.Zero
		result.Net = result.Gross

	case employee.ContractTypeHourly:
		result.Gross = rate.Mul(result.WorkedHours)
		result.Deduction = decimal.Zero
		result.Net = result.Gross
	}

	return result, nil
}

// workedHours prefers the recorded worked_minutes, falls back to the clock
// span when both timestamps exist, else counts zero.
func workedHours(record attendance.AttendanceRecord) decimal.Decimal {
	sixty := decimal.NewFromInt(60)
	if record.WorkedMinutes != nil {
		return decimal.NewFromInt(int64(*record.WorkedMinutes)).Div(sixty)
	}
	if record.ClockIn != nil && record.ClockOut != nil && record.ClockOut.After(*record.ClockIn) {
		minutes := int64(record.ClockOut.Sub(*record.ClockIn).Minutes())
		return decimal.NewFromInt(minutes).Div(sixty)
	}
	return decimal.Zero
}

func filterByPeriod(records []attendance.AttendanceRecord, start, end time.Time) []attendance.AttendanceRecord {
	var out []attendance.AttendanceRecord
	for _, record := range records {
		day := dateOnly(record.Date)
		if day.Before(dateOnly(start)) || day.After(dateOnly(end)) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
