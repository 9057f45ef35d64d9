package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrMissingRate         = errors.New("employee lacks the rate required by their contract type")
	ErrInvalidContractType = errors.New("invalid contract type")
)
