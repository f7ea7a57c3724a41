package models

import "time"

// PaymentStatus is the derived state of a booking's payment ledger.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentPaid      PaymentStatus = "paid"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentCancelled PaymentStatus = "cancelled"
)

// TransactionStatus is the state of a single recorded transaction.
// Only completed transactions count toward paidAmount; refunded
// transactions are voided and excluded from the sum.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// PaymentTransaction is one entry in the append-only transaction history.
// TransactionID is the gateway's own charge identifier and serves as the
// idempotency key across webhook redeliveries.
type PaymentTransaction struct {
	TransactionID string            `bson:"transaction_id" json:"transactionId"`
	Amount        int64             `bson:"amount" json:"amount"` // minor units
	Currency      string            `bson:"currency" json:"currency"`
	Method        string            `bson:"method" json:"method"`
	Status        TransactionStatus `bson:"status" json:"status"`
	OccurredAt    time.Time         `bson:"occurred_at" json:"occurredAt"`
	Notes         string            `bson:"notes,omitempty" json:"notes,omitempty"`
}

// PaymentDetails is the ledger embedded in a booking. All amounts are
// minor units (cents, kobo) in a single currency; gateway amounts are
// converted at the boundary before they reach the ledger.
type PaymentDetails struct {
	TotalAmount  int64                `bson:"total_amount" json:"totalAmount"`
	PaidAmount   int64                `bson:"paid_amount" json:"paidAmount"`
	Currency     string               `bson:"currency" json:"currency"`
	Status       PaymentStatus        `bson:"status" json:"status"`
	Transactions []PaymentTransaction `bson:"transactions" json:"transactions"`
}

// FindTransaction returns the transaction with the given id, if recorded.
func (p *PaymentDetails) FindTransaction(id string) *PaymentTransaction {
	for i := range p.Transactions {
		if p.Transactions[i].TransactionID == id {
			return &p.Transactions[i]
		}
	}
	return nil
}

// Balance is the outstanding amount in minor units, never negative.
func (p *PaymentDetails) Balance() int64 {
	if p.PaidAmount >= p.TotalAmount {
		return 0
	}
	return p.TotalAmount - p.PaidAmount
}

// Recompute derives paidAmount and status from the full transaction set.
// It is always recomputed from scratch, never incremented against a
// possibly-stale value, which keeps replayed and out-of-order webhook
// deliveries safe.
func (p *PaymentDetails) Recompute() {
	var paid, refunded int64
	for _, tx := range p.Transactions {
		switch tx.Status {
		case TransactionCompleted:
			paid += tx.Amount
		case TransactionRefunded:
			refunded += tx.Amount
		}
	}
	p.PaidAmount = paid

	switch {
	case paid == 0 && refunded > 0:
		p.Status = PaymentRefunded
	case paid == 0:
		if p.Status != PaymentCancelled {
			p.Status = PaymentPending
		}
	case paid < p.TotalAmount:
		p.Status = PaymentPartial
	default:
		p.Status = PaymentPaid
	}
}
