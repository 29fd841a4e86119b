package variant

// Field names a SkuDraft field addressable through DraftStore.UpdateField.
type Field string

const (
	FieldCode         Field = "sku_code"
	FieldMRP          Field = "mrp"
	FieldSellingPrice Field = "selling_price"
	FieldCostPrice    Field = "cost_price"
	FieldStock        Field = "stock"
	FieldLotID        Field = "lot_id"
)

// DraftStore is the operator-facing ordered draft collection after
// generation. It is a plain sequence, not identity-indexed: callers that
// remove rows must recompute any index-based references afterwards.
type DraftStore struct {
	drafts []SkuDraft
}

func NewDraftStore(drafts []SkuDraft) *DraftStore {
	return &DraftStore{drafts: drafts}
}

func (s *DraftStore) Len() int {
	return len(s.drafts)
}

// Drafts returns the underlying sequence in order.
func (s *DraftStore) Drafts() []SkuDraft {
	return s.drafts
}

// Replace swaps in a new draft sequence, normally the output of Reconcile.
func (s *DraftStore) Replace(drafts []SkuDraft) {
	s.drafts = drafts
}

// UpdateField sets a single field on the draft at index. No validation is
// performed here; numeric coercion is the caller's job. Out-of-range
// indices, unknown fields, and mistyped values are silent no-ops.
func (s *DraftStore) UpdateField(index int, field Field, value interface{}) {
	if index < 0 || index >= len(s.drafts) {
		return
	}
	d := &s.drafts[index]
	switch field {
	case FieldCode:
		if v, ok := value.(string); ok {
			d.Code = v
		}
	case FieldMRP:
		if v, ok := asFloat(value); ok {
			d.MRP = v
		}
	case FieldSellingPrice:
		if v, ok := asFloat(value); ok {
			d.SellingPrice = v
		}
	case FieldCostPrice:
		if v, ok := asFloat(value); ok {
			d.CostPrice = v
		}
	case FieldStock:
		if v, ok := asFloat(value); ok {
			d.Stock = int(v)
		}
	case FieldLotID:
		if v, ok := value.(string); ok {
			d.LotID = v
		}
	}
}

// asFloat widens the numeric types a JSON-decoding caller plausibly hands us.
func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// RemoveRow deletes the draft at index; out-of-range is a no-op.
func (s *DraftStore) RemoveRow(index int) {
	if index < 0 || index >= len(s.drafts) {
		return
	}
	s.drafts = append(s.drafts[:index], s.drafts[index+1:]...)
}

// ExportedAttribute is the wire shape the persistence layer consumes for
// one attribute-value pair.
type ExportedAttribute struct {
	AttributeID   string `json:"attribute_id"`
	Value         string `json:"value"`
	AttributeName string `json:"attribute_name"`
}

// ExportedSku is one draft in submission shape.
type ExportedSku struct {
	ServerID     string              `json:"server_id,omitempty"`
	SKU          string              `json:"sku"`
	MRP          float64             `json:"mrp"`
	SellingPrice float64             `json:"selling_price"`
	CostPrice    float64             `json:"cost_price"`
	Stock        int                 `json:"stock"`
	Attributes   []ExportedAttribute `json:"attributes"`
	Images       []string            `json:"images"`
	LotID        string              `json:"lot_id,omitempty"`
}

// Export maps every draft into submission shape. Attribute names are
// resolved against the current definitions first, then the denormalized
// name carried on the pair, then the raw attribute id.
func (s *DraftStore) Export(resolve NameResolver) []ExportedSku {
	out := make([]ExportedSku, 0, len(s.drafts))
	for _, d := range s.drafts {
		attrs := make([]ExportedAttribute, 0, len(d.Attributes))
		for _, p := range d.Attributes {
			name := ""
			if resolve != nil {
				name = resolve(p.AttributeID)
			}
			if name == "" {
				name = p.AttributeName
			}
			if name == "" {
				name = p.AttributeID
			}
			attrs = append(attrs, ExportedAttribute{
				AttributeID:   p.AttributeID,
				Value:         p.Value,
				AttributeName: name,
			})
		}
		out = append(out, ExportedSku{
			ServerID:     d.ServerID,
			SKU:          d.Code,
			MRP:          d.MRP,
			SellingPrice: d.SellingPrice,
			CostPrice:    d.CostPrice,
			Stock:        d.Stock,
			Attributes:   attrs,
			Images:       d.Images,
			LotID:        d.LotID,
		})
	}
	return out
}
