package payslip

import (
	"github.com/shopspring/decimal"
)

type SlipResponse struct {
	ID              string                     `json:"id"`
	CycleID         string                     `json:"cycle_id"`
	EmployeeID      string                     `json:"employee_id"`
	EmployeeName    *string                    `json:"employee_name,omitempty"`
	GrossSalary     decimal.Decimal            `json:"gross_salary"`
	NetSalary       decimal.Decimal            `json:"net_salary"`
	Deduction       decimal.Decimal            `json:"deduction"`
	DeductionDetail map[string]decimal.Decimal `json:"deduction_detail,omitempty"`
	WorkedDays      int                        `json:"worked_days"`
	AbsentDays      int                        `json:"absent_days"`
	WorkedHours     decimal.Decimal            `json:"worked_hours"`
	TotalPaid       decimal.Decimal            `json:"total_paid"`
	Outstanding     decimal.Decimal            `json:"outstanding"`
	Status          string                     `json:"status"`
}

func ToSlipResponse(s PaySlip) SlipResponse {
	return SlipResponse{
		ID:              s.ID,
		CycleID:         s.CycleID,
		EmployeeID:      s.EmployeeID,
		EmployeeName:    s.EmployeeName,
		GrossSalary:     s.GrossSalary,
		NetSalary:       s.NetSalary,
		Deduction:       s.Deduction,
		DeductionDetail: s.DeductionDetail,
		WorkedDays:      s.WorkedDays,
		AbsentDays:      s.AbsentDays,
		WorkedHours:     s.WorkedHours,
		TotalPaid:       s.TotalPaid,
		Outstanding:     s.Outstanding(),
		Status:          string(s.Status),
	}
}

func ToSlipResponses(slips []PaySlip) []SlipResponse {
	result := make([]SlipResponse, 0, len(slips))
	for _, s := range slips {
		result = append(result, ToSlipResponse(s))
	}
	return result
}
