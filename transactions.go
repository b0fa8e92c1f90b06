package graphz

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType tells a purchase from a sale.
type TransactionType string

const (
	TxBuy  TransactionType = "BUY"
	TxSell TransactionType = "SELL"
)

// MaxTransactions is the number of transactions the log retains.
const MaxTransactions = 50

// Transaction is an executed trade. It is never modified once created.
type Transaction struct {
	ID        uuid.UUID
	Type      TransactionType
	Symbol    string
	Quantity  Quantity
	Price     Money
	Total     Money // Quantity * Price
	Timestamp time.Time
}

func newTransaction(typ TransactionType, symbol string, quantity Quantity, price Money, on time.Time) Transaction {
	return Transaction{
		ID:        uuid.New(),
		Type:      typ,
		Symbol:    symbol,
		Quantity:  quantity,
		Price:     price,
		Total:     price.Mul(quantity),
		Timestamp: on,
	}
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var o orderedObject
	o.Append("id", t.ID).
		Append("type", t.Type).
		Append("symbol", t.Symbol).
		Append("quantity", t.Quantity).
		Append("price", t.Price).
		Append("total", t.Total).
		Append("timestamp", t.Timestamp.UnixMilli())
	return o.MarshalJSON()
}

// TransactionLog is the trade history, newest first, holding at most
// MaxTransactions entries.
type TransactionLog struct {
	txs []Transaction
}

// Append returns a new log with tx in first position. The oldest entry is
// dropped when the log is full.
func (l TransactionLog) Append(tx Transaction) TransactionLog {
	keep := min(len(l.txs), MaxTransactions-1)
	txs := make([]Transaction, 0, keep+1)
	txs = append(txs, tx)
	txs = append(txs, l.txs[:keep]...)
	return TransactionLog{txs: txs}
}

// Len returns the number of retained transactions.
func (l TransactionLog) Len() int { return len(l.txs) }

// All returns a copy of the retained transactions, newest first.
func (l TransactionLog) All() []Transaction {
	out := make([]Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

// Latest returns the most recent transaction.
func (l TransactionLog) Latest() (Transaction, bool) {
	if len(l.txs) == 0 {
		return Transaction{}, false
	}
	return l.txs[0], true
}
