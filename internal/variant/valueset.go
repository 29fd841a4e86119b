package variant

import "strings"

// Axis is one variant-defining attribute together with its candidate values.
// Value order is insertion order and is load-bearing: it fixes both the
// enumeration order of generated combinations and the derived SKU codes.
type Axis struct {
	AttributeID string   `json:"attribute_id"`
	Values      []string `json:"values"`
}

// ValueSet holds the operator's current choice of variant axes. Axes are
// kept in an explicit ordered list rather than a map so that generation
// order never depends on container iteration order.
type ValueSet struct {
	axes []Axis
}

// ToggleAxis selects the attribute as a variant axis, or deselects it if it
// is already selected. Deselecting discards the axis's accumulated values.
func (s *ValueSet) ToggleAxis(attributeID string) {
	for i, a := range s.axes {
		if a.AttributeID == attributeID {
			s.axes = append(s.axes[:i], s.axes[i+1:]...)
			return
		}
	}
	s.axes = append(s.axes, Axis{AttributeID: attributeID})
}

// HasAxis reports whether the attribute is currently selected.
func (s *ValueSet) HasAxis(attributeID string) bool {
	for _, a := range s.axes {
		if a.AttributeID == attributeID {
			return true
		}
	}
	return false
}

// AddValue appends a candidate value to the axis. The value is trimmed
// first; empty values, exact duplicates, and unknown axes are no-ops.
func (s *ValueSet) AddValue(attributeID, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	for i, a := range s.axes {
		if a.AttributeID != attributeID {
			continue
		}
		for _, v := range a.Values {
			if v == value {
				return
			}
		}
		s.axes[i].Values = append(s.axes[i].Values, value)
		return
	}
}

// RemoveValue removes the value at index from the axis. Out-of-range
// indices and unknown axes are no-ops.
func (s *ValueSet) RemoveValue(attributeID string, index int) {
	for i, a := range s.axes {
		if a.AttributeID != attributeID {
			continue
		}
		if index < 0 || index >= len(a.Values) {
			return
		}
		s.axes[i].Values = append(a.Values[:index], a.Values[index+1:]...)
		return
	}
}

// Axes returns a copy of the current axes in selection order.
func (s *ValueSet) Axes() []Axis {
	out := make([]Axis, len(s.axes))
	for i, a := range s.axes {
		out[i] = Axis{AttributeID: a.AttributeID, Values: append([]string(nil), a.Values...)}
	}
	return out
}
