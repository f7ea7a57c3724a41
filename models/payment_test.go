package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeDerivesStatusFromTransactions(t *testing.T) {
	p := PaymentDetails{TotalAmount: 100000, Currency: "USD", Status: PaymentPending}

	p.Transactions = append(p.Transactions, PaymentTransaction{
		TransactionID: "tx_1", Amount: 40000, Status: TransactionCompleted,
	})
	p.Recompute()
	assert.Equal(t, int64(40000), p.PaidAmount)
	assert.Equal(t, PaymentPartial, p.Status)
	assert.Equal(t, int64(60000), p.Balance())

	p.Transactions = append(p.Transactions, PaymentTransaction{
		TransactionID: "tx_2", Amount: 60000, Status: TransactionCompleted,
	})
	p.Recompute()
	assert.Equal(t, PaymentPaid, p.Status)
	assert.Equal(t, int64(0), p.Balance())
}

func TestRecomputeExcludesNonCompleted(t *testing.T) {
	p := PaymentDetails{TotalAmount: 100000, Status: PaymentPending}
	p.Transactions = []PaymentTransaction{
		{TransactionID: "tx_1", Amount: 50000, Status: TransactionPending},
		{TransactionID: "tx_2", Amount: 50000, Status: TransactionFailed},
	}
	p.Recompute()
	assert.Equal(t, int64(0), p.PaidAmount)
	assert.Equal(t, PaymentPending, p.Status)
}

func TestRecomputeRefundVoidsAmount(t *testing.T) {
	p := PaymentDetails{TotalAmount: 100000, Status: PaymentPending}
	p.Transactions = []PaymentTransaction{
		{TransactionID: "tx_1", Amount: 100000, Status: TransactionRefunded},
	}
	p.Recompute()
	assert.Equal(t, int64(0), p.PaidAmount)
	assert.Equal(t, PaymentRefunded, p.Status)
}

func TestRecomputePreservesCancelled(t *testing.T) {
	p := PaymentDetails{TotalAmount: 100000, Status: PaymentCancelled}
	p.Recompute()
	assert.Equal(t, PaymentCancelled, p.Status)
}

func TestOverpaymentNeverYieldsNegativeBalance(t *testing.T) {
	p := PaymentDetails{TotalAmount: 100000, Status: PaymentPending}
	p.Transactions = []PaymentTransaction{
		{TransactionID: "tx_1", Amount: 120000, Status: TransactionCompleted},
	}
	p.Recompute()
	assert.Equal(t, int64(120000), p.PaidAmount)
	assert.Equal(t, PaymentPaid, p.Status)
	assert.Equal(t, int64(0), p.Balance())
}
