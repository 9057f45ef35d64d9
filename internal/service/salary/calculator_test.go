package salary

import (
	"testing"
	"time"

	"github.com/opspay/payroll-backend-go/internal/domain/attendance"
	"github.com/opspay/payroll-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	periodStart = time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func day(d int) time.Time {
	return time.Date(2025, time.August, d, 0, 0, 0, 0, time.UTC)
}

func records(status attendance.Status, days ...int) []attendance.AttendanceRecord {
	var out []attendance.AttendanceRecord
	for _, d := range days {
		out = append(out, attendance.AttendanceRecord{
			EmployeeID: "emp-1",
			Date:       day(d),
			Status:     status,
		})
	}
	return out
}

func TestCompute_FixedWithAbsences(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(dec(15000))
	emp := employee.Employee{ContractType: employee.ContractTypeFixed, BaseSalary: decPtr(300000)}

	recs := records(attendance.StatusPresent, 1, 2, 3)
	recs = append(recs, records(attendance.StatusAbsent, 4, 5)...)

	result, err := calc.Compute(emp, recs, periodStart, periodEnd)
	require.NoError(t, err)

	assert.True(t, result.Gross.Equal(dec(300000)), "gross = %s", result.Gross)
	assert.True(t, result.Deduction.Equal(dec(30000)), "deduction = %s", result.Deduction)
	assert.True(t, result.Net.Equal(dec(270000)), "net = %s", result.Net)
	assert.Equal(t, 2, result.AbsentDays)
	assert.True(t, result.DeductionDetail[DeductionAbsence].Equal(dec(30000)))
}

func TestCompute_FixedNetNeverNegative(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(dec(15000))
	emp := employee.Employee{ContractType: employee.ContractTypeFixed, BaseSalary: decPtr(20000)}

	result, err := calc.Compute(emp, records(attendance.StatusAbsent, 1, 2, 3), periodStart, periodEnd)
	require.NoError(t, err)

	assert.True(t, result.Net.IsZero(), "net = %s", result.Net)
	assert.True(t, result.Deduction.Equal(dec(20000)), "deduction clamps at gross")
}

func TestCompute_DailyRateCountsLateAsWorked(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(dec(15000))
	emp := employee.Employee{ContractType: employee.ContractTypeDailyRate, DailyRate: decPtr(5000)}

	recs := records(attendance.StatusPresent, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16)
	recs = append(recs, records(attendance.StatusLate, 17, 18)...)
	recs = append(recs, records(attendance.StatusAbsent, 19, 20)...)

	result, err := calc.Compute(emp, recs, periodStart, periodEnd)
	require.NoError(t, err)

	assert.Equal(t, 18, result.WorkedDays)
	assert.True(t, result.Gross.Equal(dec(90000)), "gross = %s", result.Gross)
	assert.True(t, result.Net.Equal(dec(90000)))
	assert.True(t, result.Deduction.IsZero(), "day-based unit already excludes unworked days")
}

func TestCompute_HourlyFromWorkedMinutes(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(dec(15000))
	emp := employee.Employee{ContractType: employee.ContractTypeHourly, HourlyRate: decPtr(2000)}

	// 20 days of 8 hours = 160 hours.
	var recs []attendance.AttendanceRecord
	for d := 1; d <= 20; d++ {
		minutes := 480
		recs = append(recs, attendance.AttendanceRecord{
			Date:          day(d),
			Status:        attendance.StatusPresent,
			WorkedMinutes: &minutes,
		})
	}

	result, err := calc.Compute(emp, recs, periodStart, periodEnd)
	require.NoError(t, err)

	assert.True(t, result.WorkedHours.Equal(dec(160)), "hours = %s", result.WorkedHours)
	assert.True(t, result.Gross.Equal(dec(320000)), "gross = %s", result.Gross)
	assert.True(t, result.Net.Equal(dec(320000)))
}

func TestCompute_HourlyPrefersWorkedMinutesOverClocks(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(dec(15000))
	emp := employee.Employee{ContractType: employee.ContractTypeHourly, HourlyRate: decPtr(1000)}

	clockIn := day(1).Add(8 * time.Hour)
	clockOut := day(1).Add(18 * time.Hour) // 10h span
	minutes := 480                         // but 8h recorded

	recs := []attendance.AttendanceRecord{
		{Date: day(1), Status: attendance.StatusPresent, ClockIn: &clockIn, ClockOut: &clockOut, WorkedMinutes: &minutes},
		// clock span only
		{Date: day(2), Status: attendance.StatusPresent, ClockIn: &clockIn, ClockOut: &clockOut},
		// neither: counts zero hours
		{Date: day(3), Status: attendance.StatusPresent},
	}

	result, err := calc.Compute(emp, recs, periodStart, periodEnd)
	require.NoError(t, err)

	assert.True(t, result.WorkedHours.Equal(dec(18)), "8h from minutes + 10h from clocks, got %s", result.WorkedHours)
	assert.True(t, result.Gross.Equal(dec(18000)))
}

func TestCompute_IgnoresRecordsOutsidePeriod(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(dec(15000))
	emp := employee.Employee{ContractType: employee.ContractTypeDailyRate, DailyRate: decPtr(5000)}

	recs := records(attendance.StatusPresent, 1, 2)
	recs = append(recs, attendance.AttendanceRecord{
		Date:   time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC),
		Status: attendance.StatusPresent,
	})
	recs = append(recs, attendance.AttendanceRecord{
		Date:   time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		Status: attendance.StatusPresent,
	})

	result, err := calc.Compute(emp, recs, periodStart, periodEnd)
	require.NoError(t, err)

	assert.Equal(t, 2, result.WorkedDays)
	assert.True(t, result.Gross.Equal(dec(10000)))
}

func TestCompute_MissingRate(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(dec(15000))

	cases := []struct {
		name string
		emp  employee.Employee
	}{
		{"fixed without base salary", employee.Employee{ContractType: employee.ContractTypeFixed}},
		{"fixed with zero base salary", employee.Employee{ContractType: employee.ContractTypeFixed, BaseSalary: decPtr(0)}},
		{"daily without rate", employee.Employee{ContractType: employee.ContractTypeDailyRate}},
		{"hourly with negative rate", employee.Employee{ContractType: employee.ContractTypeHourly, HourlyRate: decPtr(-5)}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := calc.Compute(c.emp, nil, periodStart, periodEnd)
			assert.ErrorIs(t, err, employee.ErrMissingRate)
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(dec(15000))
	emp := employee.Employee{ContractType: employee.ContractTypeFixed, BaseSalary: decPtr(300000)}
	recs := records(attendance.StatusAbsent, 4, 5)

	first, err := calc.Compute(emp, recs, periodStart, periodEnd)
	require.NoError(t, err)
	second, err := calc.Compute(emp, recs, periodStart, periodEnd)
	require.NoError(t, err)

	assert.True(t, first.Net.Equal(second.Net))
	assert.True(t, first.Gross.Equal(second.Gross))
}
