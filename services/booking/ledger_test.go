package booking

import (
	"context"
	"testing"
	"time"

	"njeyali/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayTx(id string, amount int64) models.PaymentTransaction {
	return models.PaymentTransaction{
		TransactionID: id,
		Amount:        amount,
		Currency:      "USD",
		Method:        "stripe",
		Status:        models.TransactionCompleted,
		OccurredAt:    time.Now().UTC(),
	}
}

func TestRecordTransactionFullPayment(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := mustCreate(svc, validVisaInput()) // totalAmount 100000

	b, err := svc.RecordTransaction(context.Background(), b.ID, gatewayTx("pi_1", 100000))
	require.NoError(t, err)

	assert.Equal(t, int64(100000), b.Payment.PaidAmount)
	assert.Equal(t, models.PaymentPaid, b.Payment.Status)
	assert.Equal(t, int64(0), b.Payment.Balance())
}

func TestRecordTransactionReplayIsNoop(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := mustCreate(svc, validVisaInput())
	ctx := context.Background()

	_, err := svc.RecordTransaction(ctx, b.ID, gatewayTx("pi_1", 100000))
	require.NoError(t, err)
	// Redelivered webhook: same transaction id.
	b, err = svc.RecordTransaction(ctx, b.ID, gatewayTx("pi_1", 100000))
	require.NoError(t, err)

	assert.Equal(t, int64(100000), b.Payment.PaidAmount, "replay must not double-count")
	assert.Len(t, b.Payment.Transactions, 1)
}

func TestRecordTransactionPartialPayments(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := mustCreate(svc, validVisaInput())
	ctx := context.Background()

	_, err := svc.RecordTransaction(ctx, b.ID, gatewayTx("tx_1", 40000))
	require.NoError(t, err)
	b, err = svc.RecordTransaction(ctx, b.ID, gatewayTx("tx_2", 40000))
	require.NoError(t, err)

	assert.Equal(t, int64(80000), b.Payment.PaidAmount)
	assert.Equal(t, models.PaymentPartial, b.Payment.Status)
	assert.Equal(t, int64(20000), b.Payment.Balance())
}

func TestRecordTransactionCommutative(t *testing.T) {
	ctx := context.Background()

	svcA, _, _, _ := newTestService()
	a := mustCreate(svcA, validVisaInput())
	_, err := svcA.RecordTransaction(ctx, a.ID, gatewayTx("tx_1", 60000))
	require.NoError(t, err)
	_, err = svcA.RecordTransaction(ctx, a.ID, gatewayTx("tx_1", 60000))
	require.NoError(t, err)
	a, err = svcA.RecordTransaction(ctx, a.ID, gatewayTx("tx_2", 40000))
	require.NoError(t, err)

	svcB, _, _, _ := newTestService()
	bb := mustCreate(svcB, validVisaInput())
	_, err = svcB.RecordTransaction(ctx, bb.ID, gatewayTx("tx_2", 40000))
	require.NoError(t, err)
	bb, err = svcB.RecordTransaction(ctx, bb.ID, gatewayTx("tx_1", 60000))
	require.NoError(t, err)

	assert.Equal(t, a.Payment.PaidAmount, bb.Payment.PaidAmount)
	assert.Equal(t, a.Payment.Status, bb.Payment.Status)
	assert.Equal(t, models.PaymentPaid, a.Payment.Status)
}

func TestPaidAmountAlwaysMatchesTransactionSum(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := mustCreate(svc, validVisaInput())
	ctx := context.Background()

	ids := []string{"tx_1", "tx_2", "tx_1", "tx_3", "tx_2"}
	for _, id := range ids {
		var err error
		b, err = svc.RecordTransaction(ctx, b.ID, gatewayTx(id, 10000))
		require.NoError(t, err)

		var sum int64
		for _, tx := range b.Payment.Transactions {
			if tx.Status == models.TransactionCompleted {
				sum += tx.Amount
			}
		}
		assert.Equal(t, sum, b.Payment.PaidAmount)
	}
	assert.Len(t, b.Payment.Transactions, 3)
}

func TestManualEntryPendingUntilVerified(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := mustCreate(svc, validVisaInput())
	ctx := context.Background()

	manual := models.PaymentTransaction{
		TransactionID: "MANUAL-1",
		Amount:        100000,
		Currency:      "USD",
		Method:        "bank-transfer",
		Status:        models.TransactionPending,
		OccurredAt:    time.Now().UTC(),
	}
	b, err := svc.RecordTransaction(ctx, b.ID, manual)
	require.NoError(t, err)
	assert.Equal(t, int64(0), b.Payment.PaidAmount, "pending manual entry must not count")
	assert.Equal(t, models.PaymentPending, b.Payment.Status)

	b, err = svc.VerifyTransaction(ctx, b.ID, "MANUAL-1", "accounts@njeyali.com")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), b.Payment.PaidAmount)
	assert.Equal(t, models.PaymentPaid, b.Payment.Status)
}

func TestVerifyTransactionIdempotent(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := mustCreate(svc, validVisaInput())
	ctx := context.Background()

	manual := models.PaymentTransaction{
		TransactionID: "MANUAL-1",
		Amount:        50000,
		Status:        models.TransactionPending,
	}
	_, err := svc.RecordTransaction(ctx, b.ID, manual)
	require.NoError(t, err)
	_, err = svc.VerifyTransaction(ctx, b.ID, "MANUAL-1", "accounts")
	require.NoError(t, err)
	b, err = svc.VerifyTransaction(ctx, b.ID, "MANUAL-1", "accounts")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), b.Payment.PaidAmount)
}

func TestRecordTransactionCurrencyMismatch(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := mustCreate(svc, validVisaInput())

	tx := gatewayTx("tx_1", 10000)
	tx.Currency = "NGN"
	_, err := svc.RecordTransaction(context.Background(), b.ID, tx)
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestRecordTransactionRejectsBadInput(t *testing.T) {
	svc, _, _, _ := newTestService()
	b := mustCreate(svc, validVisaInput())
	ctx := context.Background()

	_, err := svc.RecordTransaction(ctx, b.ID, gatewayTx("", 10000))
	assert.Equal(t, CodeValidation, ErrorCode(err))

	_, err = svc.RecordTransaction(ctx, b.ID, gatewayTx("tx_1", 0))
	assert.Equal(t, CodeValidation, ErrorCode(err))

	_, err = svc.RecordTransaction(ctx, b.ID, gatewayTx("tx_1", -500))
	assert.Equal(t, CodeValidation, ErrorCode(err))
}

func TestRecordTransactionRetriesOnVersionConflict(t *testing.T) {
	svc, repo, _, _ := newTestService()
	b := mustCreate(svc, validVisaInput())

	repo.conflictsLeft = 2 // first two writes lose the race
	b, err := svc.RecordTransaction(context.Background(), b.ID, gatewayTx("tx_1", 100000))
	require.NoError(t, err)
	assert.Equal(t, int64(100000), b.Payment.PaidAmount)
}

func TestRecordTransactionConflictRetriesExhausted(t *testing.T) {
	svc, repo, _, _ := newTestService()
	b := mustCreate(svc, validVisaInput())

	repo.conflictsLeft = 10
	_, err := svc.RecordTransaction(context.Background(), b.ID, gatewayTx("tx_1", 100000))
	assert.Equal(t, CodeConflict, ErrorCode(err))
}

func TestNotificationFailureDoesNotBlockLedger(t *testing.T) {
	svc, _, _, sender := newTestService()
	b := mustCreate(svc, validVisaInput())
	sender.fail = true

	b, err := svc.RecordTransaction(context.Background(), b.ID, gatewayTx("tx_1", 100000))
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, b.Payment.Status)
}
