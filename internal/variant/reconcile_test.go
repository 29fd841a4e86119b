package variant

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReconcilePreservesIdentityUnderRegeneration(t *testing.T) {
	t.Parallel()

	prev := []SkuDraft{
		{
			ServerID:   "s1",
			Code:       "shirt-red-custom",
			MRP:        99,
			Stock:      12,
			Images:     []string{"red.jpg"},
			LotID:      "lot-7",
			Attributes: Combination{{AttributeID: "color", Value: "Red"}},
		},
	}

	combos := Generate([]Axis{{AttributeID: "color", Values: []string{"Red", "Blue"}}}, nil)
	out := Reconcile(combos, prev, Defaults{Slug: "shirt", MRP: 120, SellingPrice: 100, CostPrice: 60})

	require.Len(t, out, 2)

	red := out[0]
	require.Equal(t, "s1", red.ServerID)
	require.Equal(t, "shirt-red-custom", red.Code, "operator-edited code must survive")
	require.Equal(t, 12, red.Stock)
	require.Equal(t, float64(99), red.MRP)
	require.Equal(t, []string{"red.jpg"}, red.Images)
	require.Equal(t, "lot-7", red.LotID)

	blue := out[1]
	require.Empty(t, blue.ServerID)
	require.Equal(t, "shirt-blue", blue.Code)
	require.Equal(t, 0, blue.Stock)
	require.Equal(t, float64(120), blue.MRP)
	require.Equal(t, float64(100), blue.SellingPrice)
	require.Equal(t, float64(60), blue.CostPrice)
	require.Empty(t, blue.Images)
	require.Empty(t, blue.LotID)
}

func TestReconcileEvictsStaleCombinations(t *testing.T) {
	t.Parallel()

	prev := []SkuDraft{
		{ServerID: "s-green", Attributes: Combination{{AttributeID: "color", Value: "Green"}}},
	}

	combos := Generate([]Axis{{AttributeID: "color", Values: []string{"Red", "Blue"}}}, nil)
	out := Reconcile(combos, prev, Defaults{Slug: "shirt"})

	require.Len(t, out, 2)
	for _, d := range out {
		require.NotEqual(t, "Green", d.Attributes[0].Value)
		require.Empty(t, d.ServerID)
	}
}

func TestReconcileNoAxesIsNoOp(t *testing.T) {
	t.Parallel()

	prev := []SkuDraft{
		{ServerID: "s1", Code: "manual-row", Stock: 3,
			Attributes: Combination{{AttributeID: "color", Value: "Red"}}},
	}

	// no axis has values yet; existing rows must not be wiped
	out := Reconcile(Generate(nil, nil), prev, Defaults{})
	require.Equal(t, prev, out)
}

func TestReconcileMatchesOrderIndependently(t *testing.T) {
	t.Parallel()

	prev := []SkuDraft{
		{
			ServerID: "s1",
			Attributes: Combination{
				{AttributeID: "size", Value: "M"},
				{AttributeID: "color", Value: "Red"},
			},
		},
	}

	combos := Generate([]Axis{
		{AttributeID: "color", Values: []string{"Red"}},
		{AttributeID: "size", Values: []string{"M"}},
	}, nil)

	out := Reconcile(combos, prev, Defaults{Slug: "shirt"})
	require.Len(t, out, 1)
	require.Equal(t, "s1", out[0].ServerID)
}

func TestReconcilePairCountMismatchRegenerates(t *testing.T) {
	t.Parallel()

	// legacy draft from when the product had two variant axes
	prev := []SkuDraft{
		{
			ServerID: "s1",
			Attributes: Combination{
				{AttributeID: "color", Value: "Red"},
				{AttributeID: "size", Value: "M"},
			},
		},
	}

	combos := Generate([]Axis{{AttributeID: "color", Values: []string{"Red"}}}, nil)
	out := Reconcile(combos, prev, Defaults{Slug: "shirt"})

	require.Len(t, out, 1)
	require.Empty(t, out[0].ServerID, "legacy shape must regenerate, not match")
}

func TestReconcileIdempotent(t *testing.T) {
	t.Parallel()

	axes := []Axis{
		{AttributeID: "color", Values: []string{"Red", "Blue"}},
		{AttributeID: "size", Values: []string{"S", "M"}},
	}
	def := Defaults{Slug: "shirt", MRP: 50, SellingPrice: 40, CostPrice: 20}

	first := Reconcile(Generate(axes, nil), nil, def)
	first[0].ServerID = "s1" // as if persisted
	first[0].Stock = 7

	second := Reconcile(Generate(axes, nil), first, def)
	require.Equal(t, first, second)

	third := Reconcile(Generate(axes, nil), second, def)
	require.Equal(t, second, third)
}

func TestReconcileNeverDuplicatesOnePreviousDraft(t *testing.T) {
	t.Parallel()

	prev := []SkuDraft{
		{ServerID: "s1", Attributes: Combination{{AttributeID: "color", Value: "Red"}}},
	}

	// two identical combinations cannot both claim the same previous draft
	combos := []Combination{
		{{AttributeID: "color", Value: "Red"}},
		{{AttributeID: "color", Value: "Red"}},
	}

	out := Reconcile(combos, prev, Defaults{Slug: "shirt"})
	require.Len(t, out, 2)
	require.Equal(t, "s1", out[0].ServerID)
	require.Empty(t, out[1].ServerID)
}
