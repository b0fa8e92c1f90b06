package graphz

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Registry is the static catalog of tradable listings.
type Registry struct {
	listings []Listing
	index    map[string]int
}

// defaultListings is the catalog used when no registry file is given.
var defaultListings = []Listing{
	{Symbol: "AAPL", Name: "Apple Inc.", BasePrice: 175.50},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", BasePrice: 142.30},
	{Symbol: "MSFT", Name: "Microsoft Corp.", BasePrice: 378.85},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", BasePrice: 151.25},
	{Symbol: "TSLA", Name: "Tesla Inc.", BasePrice: 248.50},
	{Symbol: "META", Name: "Meta Platforms", BasePrice: 484.03},
	{Symbol: "NVDA", Name: "NVIDIA Corp.", BasePrice: 505.48},
	{Symbol: "NFLX", Name: "Netflix Inc.", BasePrice: 597.32},
	{Symbol: "AMD", Name: "AMD Inc.", BasePrice: 152.70},
	{Symbol: "INTC", Name: "Intel Corp.", BasePrice: 43.85},
}

// DefaultRegistry returns the built-in catalog of ten US equities.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultListings...)
	if err != nil {
		panic(err) // the built-in catalog is valid
	}
	return r
}

// NewRegistry validates and indexes listings.
func NewRegistry(listings ...Listing) (*Registry, error) {
	if len(listings) == 0 {
		return nil, errors.New("registry is empty")
	}
	r := &Registry{
		listings: make([]Listing, 0, len(listings)),
		index:    make(map[string]int, len(listings)),
	}
	for _, l := range listings {
		if l.Symbol == "" {
			return nil, fmt.Errorf("listing %q has no symbol", l.Name)
		}
		if _, exists := r.index[l.Symbol]; exists {
			return nil, fmt.Errorf("symbol %q is already listed", l.Symbol)
		}
		if l.BasePrice < PriceFloor {
			return nil, fmt.Errorf("symbol %q: base price %v is below %v", l.Symbol, l.BasePrice, PriceFloor)
		}
		if l.Name == "" {
			l.Name = l.Symbol
		}
		r.index[l.Symbol] = len(r.listings)
		r.listings = append(r.listings, l)
	}
	return r, nil
}

// DecodeRegistry reads a YAML catalog:
//
//	instruments:
//	  - symbol: AAPL
//	    name: Apple Inc.
//	    basePrice: 175.50
func DecodeRegistry(r io.Reader) (*Registry, error) {
	var doc struct {
		Instruments []Listing `yaml:"instruments"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding registry: %w", err)
	}
	return NewRegistry(doc.Instruments...)
}

// LoadRegistry reads the YAML catalog at path, or returns the default catalog
// if path is empty.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return DefaultRegistry(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := DecodeRegistry(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Len returns the number of listings.
func (r *Registry) Len() int { return len(r.listings) }

// Listings returns a copy of the listings in catalog order.
func (r *Registry) Listings() []Listing {
	out := make([]Listing, len(r.listings))
	copy(out, r.listings)
	return out
}

// Lookup returns the listing for symbol.
func (r *Registry) Lookup(symbol string) (Listing, bool) {
	i, ok := r.index[symbol]
	if !ok {
		return Listing{}, false
	}
	return r.listings[i], true
}
