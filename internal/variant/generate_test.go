package variant

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateCartesianCompleteness(t *testing.T) {
	t.Parallel()

	axes := []Axis{
		{AttributeID: "color", Values: []string{"a1", "a2"}},
		{AttributeID: "size", Values: []string{"b1", "b2", "b3"}},
	}

	combos := Generate(axes, nil)
	require.Len(t, combos, 6)

	seen := map[string]bool{}
	for _, c := range combos {
		require.Len(t, c, 2)
		require.Equal(t, "color", c[0].AttributeID)
		require.Equal(t, "size", c[1].AttributeID)
		pair := c[0].Value + "/" + c[1].Value
		require.False(t, seen[pair], "duplicate combination %s", pair)
		seen[pair] = true
	}
	for _, a := range []string{"a1", "a2"} {
		for _, b := range []string{"b1", "b2", "b3"} {
			require.True(t, seen[a+"/"+b], "missing combination %s/%s", a, b)
		}
	}
}

func TestGenerateNestedOrder(t *testing.T) {
	t.Parallel()

	axes := []Axis{
		{AttributeID: "color", Values: []string{"red", "blue"}},
		{AttributeID: "size", Values: []string{"s", "m"}},
	}

	combos := Generate(axes, nil)

	var got []string
	for _, c := range combos {
		got = append(got, c[0].Value+"-"+c[1].Value)
	}
	// first axis varies slowest, last axis fastest
	require.Equal(t, []string{"red-s", "red-m", "blue-s", "blue-m"}, got)
}

func TestGenerateExcludesEmptyAxes(t *testing.T) {
	t.Parallel()

	axes := []Axis{
		{AttributeID: "color", Values: []string{"a1", "a2"}},
		{AttributeID: "size"}, // selected but not yet populated
	}

	combos := Generate(axes, nil)
	require.Len(t, combos, 2)
	for _, c := range combos {
		require.Len(t, c, 1)
		require.Equal(t, "color", c[0].AttributeID)
	}
}

func TestGenerateNoAxes(t *testing.T) {
	t.Parallel()

	require.Empty(t, Generate(nil, nil))
	require.Empty(t, Generate([]Axis{{AttributeID: "color"}}, nil))
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	axes := []Axis{
		{AttributeID: "color", Values: []string{"red", "blue"}},
		{AttributeID: "size", Values: []string{"s", "m", "l"}},
	}

	first := Generate(axes, nil)
	second := Generate(axes, nil)
	require.Equal(t, first, second)
}

func TestGenerateResolvesAttributeNames(t *testing.T) {
	t.Parallel()

	axes := []Axis{
		{AttributeID: "attr-1", Values: []string{"red"}},
		{AttributeID: "attr-2", Values: []string{"m"}},
	}
	resolve := func(id string) string {
		if id == "attr-1" {
			return "Color"
		}
		return ""
	}

	combos := Generate(axes, resolve)
	require.Len(t, combos, 1)
	require.Equal(t, "Color", combos[0][0].AttributeName)
	// unknown definition falls back to the raw id
	require.Equal(t, "attr-2", combos[0][1].AttributeName)
}

func TestDefaultCodeDerivation(t *testing.T) {
	t.Parallel()

	combo := Combination{
		{AttributeID: "color", Value: "Red"},
		{AttributeID: "size", Value: "M"},
	}

	require.Equal(t, "shirt-red-m", combo.DefaultCode("shirt"))
	require.Equal(t, "sku-red-m", combo.DefaultCode(""))
}

func TestCombinationKeyOrderIndependent(t *testing.T) {
	t.Parallel()

	a := Combination{
		{AttributeID: "color", Value: "Red"},
		{AttributeID: "size", Value: "M"},
	}
	b := Combination{
		{AttributeID: "size", Value: "M"},
		{AttributeID: "color", Value: "Red"},
	}
	c := Combination{
		{AttributeID: "color", Value: "Red"},
	}

	require.Equal(t, a.Key(), b.Key())
	require.NotEqual(t, a.Key(), c.Key(), "pair-count mismatch must not match")

	// display names never affect identity
	d := Combination{
		{AttributeID: "color", Value: "Red", AttributeName: "Colour"},
		{AttributeID: "size", Value: "M", AttributeName: "Size"},
	}
	require.Equal(t, a.Key(), d.Key())
}
