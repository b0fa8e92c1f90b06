package renderer

import (
	"bytes"
	"fmt"

	"github.com/Mattojjo/graphz"
	md "github.com/nao1215/markdown"
)

// Transaction renders a transaction to a string.
func Transaction(tx graphz.Transaction) string {
	switch tx.Type {
	case graphz.TxBuy:
		return fmt.Sprintf("Bought %s %s at %s for %s", tx.Quantity, tx.Symbol, tx.Price, tx.Total)
	case graphz.TxSell:
		return fmt.Sprintf("Sold %s %s at %s for %s", tx.Quantity, tx.Symbol, tx.Price, tx.Total)
	default:
		return string(tx.Type)
	}
}

// TransactionsMarkdown renders the most recent transactions first, at most
// limit of them (all if limit <= 0).
func TransactionsMarkdown(txs []graphz.Transaction, limit int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Transactions")
	if len(txs) == 0 {
		doc.PlainText("No transactions yet.")
		return doc.String()
	}
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Time", "Type", "Symbol", "Shares", "Price", "Total"},
		Rows:   [][]string{},
	}
	for _, tx := range txs {
		table.Rows = append(table.Rows, []string{
			tx.Timestamp.Format("15:04:05"),
			string(tx.Type),
			tx.Symbol,
			tx.Quantity.String(),
			tx.Price.String(),
			tx.Total.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
