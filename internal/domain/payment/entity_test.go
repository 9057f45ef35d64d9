package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatReceiptNumber(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, time.August, 5, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "REC202508050001", FormatReceiptNumber(day, 1))
	assert.Equal(t, "REC202508050042", FormatReceiptNumber(day, 42))
	assert.Equal(t, "REC202508051234", FormatReceiptNumber(day, 1234))
}

func TestMethodValid(t *testing.T) {
	t.Parallel()

	for _, m := range []Method{MethodCash, MethodBankTransfer, MethodCheque, MethodMobileMoney} {
		assert.True(t, m.Valid())
	}
	assert.False(t, Method("paypal").Valid())
}
