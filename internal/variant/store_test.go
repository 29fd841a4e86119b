package variant

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func draftFixture() []SkuDraft {
	return []SkuDraft{
		{
			Code:         "shirt-red",
			MRP:          100,
			SellingPrice: 90,
			Attributes: Combination{
				{AttributeID: "color", Value: "Red", AttributeName: "Color"},
			},
		},
		{
			Code: "shirt-blue",
			Attributes: Combination{
				{AttributeID: "color", Value: "Blue", AttributeName: "Color"},
			},
		},
	}
}

func TestDraftStoreUpdateField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		field  Field
		value  interface{}
		check  func(t *testing.T, d SkuDraft)
	}{
		{
			name:  "sku code",
			field: FieldCode,
			value: "shirt-red-xl",
			check: func(t *testing.T, d SkuDraft) { require.Equal(t, "shirt-red-xl", d.Code) },
		},
		{
			name:  "selling price from json number",
			field: FieldSellingPrice,
			value: float64(79.5),
			check: func(t *testing.T, d SkuDraft) { require.Equal(t, 79.5, d.SellingPrice) },
		},
		{
			name:  "stock from int",
			field: FieldStock,
			value: 42,
			check: func(t *testing.T, d SkuDraft) { require.Equal(t, 42, d.Stock) },
		},
		{
			name:  "lot id",
			field: FieldLotID,
			value: "lot-3",
			check: func(t *testing.T, d SkuDraft) { require.Equal(t, "lot-3", d.LotID) },
		},
		{
			name:  "mistyped value is ignored",
			field: FieldMRP,
			value: "not-a-number",
			check: func(t *testing.T, d SkuDraft) { require.Equal(t, float64(100), d.MRP) },
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			store := NewDraftStore(draftFixture())
			store.UpdateField(0, tc.field, tc.value)
			tc.check(t, store.Drafts()[0])
		})
	}
}

func TestDraftStoreIgnoresOutOfRange(t *testing.T) {
	t.Parallel()

	store := NewDraftStore(draftFixture())
	store.UpdateField(-1, FieldStock, 5)
	store.UpdateField(99, FieldStock, 5)
	store.RemoveRow(-1)
	store.RemoveRow(99)

	require.Equal(t, 2, store.Len())
	require.Equal(t, 0, store.Drafts()[0].Stock)
}

func TestDraftStoreRemoveRow(t *testing.T) {
	t.Parallel()

	store := NewDraftStore(draftFixture())
	store.RemoveRow(0)

	require.Equal(t, 1, store.Len())
	require.Equal(t, "shirt-blue", store.Drafts()[0].Code)

	store.RemoveRow(0)
	require.Equal(t, 0, store.Len())
}

func TestDraftStoreExportNameResolution(t *testing.T) {
	t.Parallel()

	store := NewDraftStore([]SkuDraft{
		{
			ServerID: "s1",
			Code:     "shirt-red-m",
			Stock:    5,
			Attributes: Combination{
				{AttributeID: "attr-color", Value: "Red", AttributeName: "Colour (old)"},
				{AttributeID: "attr-size", Value: "M", AttributeName: "Size"},
				{AttributeID: "attr-gone", Value: "x"},
			},
		},
	})

	// current definitions know color only
	resolve := func(id string) string {
		if id == "attr-color" {
			return "Color"
		}
		return ""
	}

	exported := store.Export(resolve)
	require.Len(t, exported, 1)
	require.Equal(t, "s1", exported[0].ServerID)
	require.Equal(t, "shirt-red-m", exported[0].SKU)

	attrs := exported[0].Attributes
	require.Equal(t, "Color", attrs[0].AttributeName, "definition wins")
	require.Equal(t, "Size", attrs[1].AttributeName, "denormalized name is the fallback")
	require.Equal(t, "attr-gone", attrs[2].AttributeName, "raw id is the last resort")
}

func TestValueSetOperations(t *testing.T) {
	t.Parallel()

	var s ValueSet
	s.ToggleAxis("color")
	s.AddValue("color", "  Red ")
	s.AddValue("color", "Red") // duplicate after trim
	s.AddValue("color", "   ") // empty after trim
	s.AddValue("color", "Blue")
	s.AddValue("size", "M") // axis never selected

	axes := s.Axes()
	require.Len(t, axes, 1)
	require.Equal(t, []string{"Red", "Blue"}, axes[0].Values)

	s.RemoveValue("color", 5) // out of range, no-op
	s.RemoveValue("color", 0)
	require.Equal(t, []string{"Blue"}, s.Axes()[0].Values)

	// deselecting discards accumulated values
	s.ToggleAxis("color")
	require.Empty(t, s.Axes())
	s.ToggleAxis("color")
	require.Empty(t, s.Axes()[0].Values)
}
