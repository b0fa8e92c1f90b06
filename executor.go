package graphz

import (
	"errors"
	"fmt"
	"time"
)

// Trade errors. Buy and Sell wrap them, test with errors.Is.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrUnknownInstrument  = errors.New("unknown instrument")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
)

// State is everything a trade reads and writes.
type State struct {
	Portfolio Portfolio
	Market    *Market
}

// lookup returns the instrument a trade of quantity symbol would execute on.
func (s State) lookup(symbol string, quantity Quantity) (Instrument, error) {
	in, ok := s.Market.Get(symbol)
	if !ok {
		return Instrument{}, fmt.Errorf("%w %q", ErrUnknownInstrument, symbol)
	}
	if !quantity.IsPositive() {
		return Instrument{}, fmt.Errorf("%w, got %s", ErrInvalidQuantity, quantity)
	}
	return in, nil
}

// Buy purchases quantity shares of symbol at its current price. It returns the
// new state and the executed transaction; s is left untouched.
func Buy(s State, symbol string, quantity Quantity, on time.Time) (State, Transaction, error) {
	in, err := s.lookup(symbol, quantity)
	if err != nil {
		return s, Transaction{}, err
	}

	price := in.Price()
	if !CanAfford(s.Portfolio.Cash, price, quantity) {
		return s, Transaction{}, fmt.Errorf("%w: buying %s %s at %s needs %s, cash is %s",
			ErrInsufficientFunds, quantity, symbol, price, price.Mul(quantity), s.Portfolio.Cash)
	}

	tx := newTransaction(TxBuy, symbol, quantity, price, on)
	next := s
	next.Portfolio = Portfolio{
		Cash:     s.Portfolio.Cash.Sub(tx.Total),
		Holdings: s.Portfolio.Holdings.Buy(symbol, price, quantity),
	}
	return next, tx, nil
}

// Sell sells quantity shares of symbol at its current price. It returns the
// new state and the executed transaction; s is left untouched.
func Sell(s State, symbol string, quantity Quantity, on time.Time) (State, Transaction, error) {
	in, err := s.lookup(symbol, quantity)
	if err != nil {
		return s, Transaction{}, err
	}

	if held := s.Portfolio.Holdings.Quantity(symbol); held.LessThan(quantity) {
		return s, Transaction{}, fmt.Errorf("%w: selling %s %s, holding %s",
			ErrInsufficientShares, quantity, symbol, held)
	}

	price := in.Price()
	tx := newTransaction(TxSell, symbol, quantity, price, on)
	next := s
	next.Portfolio = Portfolio{
		Cash:     s.Portfolio.Cash.Add(tx.Total),
		Holdings: s.Portfolio.Holdings.Sell(symbol, quantity),
	}
	return next, tx, nil
}
