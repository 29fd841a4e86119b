package variant

// SkuDraft is an in-memory, not-yet-submitted SKU record. ServerID is empty
// until the persistence layer has assigned one.
type SkuDraft struct {
	ServerID     string      `json:"server_id,omitempty"`
	Code         string      `json:"sku_code"`
	MRP          float64     `json:"mrp"`
	SellingPrice float64     `json:"selling_price"`
	CostPrice    float64     `json:"cost_price"`
	Stock        int         `json:"stock"`
	Attributes   Combination `json:"attributes"`
	Images       []string    `json:"images"`
	LotID        string      `json:"lot_id,omitempty"`
}

// Defaults carries the parent product's current pricing, copied onto drafts
// fabricated for brand-new combinations.
type Defaults struct {
	Slug         string
	MRP          float64
	SellingPrice float64
	CostPrice    float64
}

// Reconcile merges a freshly generated combination sequence with the
// previous draft collection.
//
// A combination that is identity-equal to a previous draft's attributes
// reuses that draft verbatim: server id, possibly hand-edited code, prices,
// stock, images, and lot linkage all survive regeneration. A combination
// with no match becomes a new draft carrying the generator's default code,
// the parent product's pricing, and zero stock. Previous drafts whose
// combination no longer exists are dropped.
//
// An empty combination sequence short-circuits to the previous drafts
// unchanged, so regenerating before any axis has values never wipes
// manually entered rows.
func Reconcile(combos []Combination, prev []SkuDraft, def Defaults) []SkuDraft {
	if len(combos) == 0 {
		return prev
	}

	byKey := make(map[string]int, len(prev))
	for i, d := range prev {
		key := d.Attributes.Key()
		if _, dup := byKey[key]; !dup {
			byKey[key] = i
		}
	}

	out := make([]SkuDraft, 0, len(combos))
	for _, c := range combos {
		key := c.Key()
		if i, ok := byKey[key]; ok {
			out = append(out, prev[i])
			// a previous draft can satisfy at most one combination
			delete(byKey, key)
			continue
		}
		out = append(out, SkuDraft{
			Code:         c.DefaultCode(def.Slug),
			MRP:          def.MRP,
			SellingPrice: def.SellingPrice,
			CostPrice:    def.CostPrice,
			Stock:        0,
			Attributes:   c,
		})
	}
	return out
}
