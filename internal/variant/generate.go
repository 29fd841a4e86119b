package variant

// Generate computes the full cartesian product over the given axes.
//
// Axes with no candidate values are excluded from the product entirely: a
// selected-but-unpopulated axis contributes nothing rather than collapsing
// the product to empty. If no axis has values the result is nil, which is
// not an error.
//
// Combinations are enumerated in nested order, first axis varying slowest
// and last axis fastest, so the output is deterministic for a given axis
// and value order.
func Generate(axes []Axis, resolve NameResolver) []Combination {
	active := make([]Axis, 0, len(axes))
	for _, a := range axes {
		if len(a.Values) > 0 {
			active = append(active, a)
		}
	}
	if len(active) == 0 {
		return nil
	}

	total := 1
	for _, a := range active {
		total *= len(a.Values)
	}

	names := make([]string, len(active))
	for i, a := range active {
		names[i] = displayName(a.AttributeID, resolve)
	}

	out := make([]Combination, 0, total)
	counters := make([]int, len(active))
	for n := 0; n < total; n++ {
		combo := make(Combination, len(active))
		for i, a := range active {
			combo[i] = Pair{
				AttributeID:   a.AttributeID,
				Value:         a.Values[counters[i]],
				AttributeName: names[i],
			}
		}
		out = append(out, combo)

		// odometer increment, last axis fastest
		for i := len(active) - 1; i >= 0; i-- {
			counters[i]++
			if counters[i] < len(active[i].Values) {
				break
			}
			counters[i] = 0
		}
	}
	return out
}

func displayName(attributeID string, resolve NameResolver) string {
	if resolve != nil {
		if name := resolve(attributeID); name != "" {
			return name
		}
	}
	return attributeID
}
