package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CatalogEntry pairs a product with its catalog key
type CatalogEntry struct {
	Key     string  `json:"key"`
	Product Product `json:"product"`
}

// Catalog is the read-only set of known products, keyed by slug.
// Iteration order is the order in which keys first appeared in the source document.
// A nil *Catalog is valid and behaves as an empty, unloaded catalog.
type Catalog struct {
	entries []CatalogEntry
	index   map[string]int
}

// NewCatalog builds a catalog from entries. A repeated key replaces the earlier
// product but keeps the position of its first occurrence.
func NewCatalog(entries ...CatalogEntry) *Catalog {
	c := &Catalog{index: make(map[string]int, len(entries))}
	for _, entry := range entries {
		c.put(entry.Key, entry.Product)
	}
	return c
}

func (c *Catalog) put(key string, product Product) {
	if i, ok := c.index[key]; ok {
		c.entries[i].Product = product
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, CatalogEntry{Key: key, Product: product})
}

// Len returns the number of products
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns the catalog entries in iteration order
func (c *Catalog) Entries() []CatalogEntry {
	if c == nil {
		return nil
	}
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Products returns the products in iteration order
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, len(c.entries))
	for i, entry := range c.entries {
		out[i] = entry.Product
	}
	return out
}

// Get returns the product stored under key
func (c *Catalog) Get(key string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	i, ok := c.index[key]
	if !ok {
		return Product{}, false
	}
	return c.entries[i].Product, true
}

// UnmarshalJSON decodes a JSON object of key -> product keeping key order
func (c *Catalog) UnmarshalJSON(data []byte) error {
	decoded := &Catalog{index: make(map[string]int)}
	err := decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var product Product
		if err := json.Unmarshal(raw, &product); err != nil {
			return fmt.Errorf("product %q: %w", key, err)
		}
		decoded.put(key, product)
		return nil
	})
	if err != nil {
		return err
	}

	*c = *decoded
	return nil
}

// MarshalJSON encodes the catalog as a JSON object in iteration order
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range c.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, entry.Key, entry.Product); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
