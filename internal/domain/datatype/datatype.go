// Package datatype defines the value types a model property can declare.
//
// Every data type is nullable: nil is always accepted and stored as nil.
// Convert normalizes the forms a value commonly arrives in (Go integer
// kinds, JSON numbers, RFC 3339 strings) to one canonical Go type so that
// stored values compare reliably.
package datatype

import (
	"encoding/json"
	"math"
	"reflect"
	"time"
)

// DataType describes the accepted values of a property.
type DataType interface {
	// Name identifies the type in error messages (e.g., "Text").
	Name() string

	// Convert returns the canonical form of value, or false when the value
	// cannot be represented by this type.
	Convert(value any) (any, bool)

	// Zero returns the initial value of a property of this type.
	Zero() any
}

// Built-in data types.
var (
	Text     DataType = textType{}
	Integer  DataType = integerType{}
	Decimal  DataType = decimalType{}
	Boolean  DataType = booleanType{}
	DateTime DataType = dateTimeType{}
)

type textType struct{}

func (textType) Name() string { return "Text" }
func (textType) Zero() any    { return "" }

func (textType) Convert(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case string:
		return v, true
	default:
		return nil, false
	}
}

type integerType struct{}

func (integerType) Name() string { return "Integer" }
func (integerType) Zero() any    { return int64(0) }

func (integerType) Convert(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case float32:
		return integral(float64(v))
	case float64:
		return integral(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil, false
		}
		return n, true
	default:
		return nil, false
	}
}

func integral(f float64) (any, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return nil, false
	}
	return int64(f), true
}

type decimalType struct{}

func (decimalType) Name() string { return "Decimal" }
func (decimalType) Zero() any    { return float64(0) }

func (decimalType) Convert(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, false
		}
		return f, true
	default:
		return nil, false
	}
}

type booleanType struct{}

func (booleanType) Name() string { return "Boolean" }
func (booleanType) Zero() any    { return false }

func (booleanType) Convert(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case bool:
		return v, true
	default:
		return nil, false
	}
}

type dateTimeType struct{}

func (dateTimeType) Name() string { return "DateTime" }
func (dateTimeType) Zero() any    { return nil }

func (dateTimeType) Convert(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return nil, true
		}
		return *v, true
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, false
		}
		return t, true
	default:
		return nil, false
	}
}

// Equal reports whether two stored values are the same. Times compare by
// instant, everything else by deep equality.
func Equal(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}
