package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB marshals a typed value into a jsonb column and back.
type JSONB[T any] struct {
	Data T
}

func NewJSONB[T any](data T) JSONB[T] {
	return JSONB[T]{Data: data}
}

func (p *JSONB[T]) Scan(src any) error {
	if src == nil {
		var zero T
		p.Data = zero
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		s, ok := src.(string)
		if !ok {
			return fmt.Errorf("JSONB.Scan: expected []byte or string, got %T", src)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, &p.Data)
}

func (p JSONB[T]) Value() (driver.Value, error) {
	return json.Marshal(p.Data)
}

func (p *JSONB[T]) GetValue() T {
	return p.Data
}
