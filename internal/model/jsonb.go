package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/nakula/catalog-admin-service/internal/variant"
)

// SkuAttributes stores a SKU's attribute-value pairs as a JSONB column.
type SkuAttributes []variant.Pair

func (a SkuAttributes) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *SkuAttributes) Scan(src interface{}) error {
	return scanJSON(src, a)
}

// StringSlice stores an ordered list of strings as a JSONB column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSlice) Scan(src interface{}) error {
	return scanJSON(src, s)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	}
	return errors.New("unsupported jsonb source type")
}
