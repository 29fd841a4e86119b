// Package variant implements product variant generation: expanding the
// attribute values chosen in the product editor into the full set of SKU
// combinations, and reconciling a regenerated set against previously
// materialized SKUs so that unchanged combinations keep their identity.
//
// The package is pure in-memory computation. It never touches storage or
// transport; the product usecase feeds it attribute definitions and the
// persisted SKU list and persists whatever it returns.
package variant

import (
	"sort"
	"strings"
)

// Pair is a single attribute-value assignment within a combination.
// AttributeName is denormalized display data and does not participate in
// combination identity.
type Pair struct {
	AttributeID   string `json:"attribute_id"`
	Value         string `json:"value"`
	AttributeName string `json:"attribute_name"`
}

// Combination is one full cross-product tuple, exactly one pair per axis.
// Slice order follows axis order (it drives SKU-code derivation), but
// identity is order-independent: see Key.
type Combination []Pair

// Key returns the canonical identity of the combination: pairs sorted by
// attribute id and joined. Two combinations are the same SKU identity iff
// their keys are equal, regardless of pair order. A combination with a
// different number of pairs always yields a different key, so drafts left
// over from a different axis shape never match.
func (c Combination) Key() string {
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = p.AttributeID + "\x00" + p.Value
	}
	sort.Strings(parts)
	return strings.Join(parts, "\x1f")
}

// DefaultCode derives the default SKU code: slug and values joined by
// hyphens in axis order, lowercased. It is a starting point the operator
// may overwrite, not a uniqueness key.
func (c Combination) DefaultCode(slug string) string {
	if slug == "" {
		slug = fallbackSlug
	}
	parts := make([]string, 0, len(c)+1)
	parts = append(parts, slug)
	for _, p := range c {
		parts = append(parts, p.Value)
	}
	return strings.ToLower(strings.Join(parts, "-"))
}

const fallbackSlug = "sku"

// NameResolver maps an attribute id to its display name. Returning "" means
// the attribute is unknown and callers fall back to denormalized data or the
// raw id. A nil resolver is valid and resolves nothing.
type NameResolver func(attributeID string) string
