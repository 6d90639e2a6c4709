package services

import "sync"

// PriceList maps a standard item type to its unit price.
type PriceList map[ItemType]float64

// DefaultPrices returns a fresh copy of the built-in catalog.
func DefaultPrices() PriceList {
	return PriceList{
		ItemIntercom:    850,
		ItemAccessPoint: 420,
		ItemData:        280,
		ItemCamera:      650,
		ItemSpeaker:     310,
	}
}

// Clone returns an independent copy of the list.
func (p PriceList) Clone() PriceList {
	out := make(PriceList, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// PriceCatalog holds the editable catalog. It is loaded once at startup and
// persisted on every change.
type PriceCatalog struct {
	mu      sync.Mutex
	persist *Persistence
	prices  PriceList
}

func NewPriceCatalog(persist *Persistence) *PriceCatalog {
	prices := persist.LoadPrices()
	if prices == nil {
		prices = DefaultPrices()
	}
	return &PriceCatalog{persist: persist, prices: prices}
}

// Prices returns a copy of the current catalog.
func (c *PriceCatalog) Prices() PriceList {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prices.Clone()
}

// UpdatePrice sets the unit price of itemType, persists the whole catalog
// and returns a copy of it.
func (c *PriceCatalog) UpdatePrice(itemType ItemType, price float64) PriceList {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prices[itemType] = price
	c.persist.SavePrices(c.prices)
	return c.prices.Clone()
}
