package models

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// Currency amounts are stored with 2 decimal places, credit tonnage with up to 4.
const (
	CurrencyScale = 2
	CreditScale   = 4
)

// Decimal is a fixed-point decimal quantity that marshals to a native DynamoDB
// number attribute. DynamoDB numbers are exact decimals (38 digits), so
// arithmetic performed inside update expressions (balance - :amount) never
// drifts the way binary floats would.
type Decimal struct {
	decimal.Decimal
}

// NewDecimal wraps a shopspring decimal.
func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{d}
}

// DecimalFromString parses a decimal string, e.g. "20.5".
func DecimalFromString(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return Decimal{d}, nil
}

// DecimalFromInt builds a decimal from an integer quantity.
func DecimalFromInt(n int64) Decimal {
	return Decimal{decimal.NewFromInt(n)}
}

// DecimalZero is the zero quantity.
func DecimalZero() Decimal {
	return Decimal{decimal.Zero}
}

// Mul returns d * other.
func (d Decimal) Mul(other Decimal) Decimal {
	return Decimal{d.Decimal.Mul(other.Decimal)}
}

// Add returns d + other.
func (d Decimal) Add(other Decimal) Decimal {
	return Decimal{d.Decimal.Add(other.Decimal)}
}

// Sub returns d - other.
func (d Decimal) Sub(other Decimal) Decimal {
	return Decimal{d.Decimal.Sub(other.Decimal)}
}

// Round returns d rounded to the given number of decimal places.
func (d Decimal) Round(places int32) Decimal {
	return Decimal{d.Decimal.Round(places)}
}

// Equal reports whether two decimals represent the same value.
func (d Decimal) Equal(other Decimal) bool {
	return d.Decimal.Equal(other.Decimal)
}

// LessThan reports whether d < other.
func (d Decimal) LessThan(other Decimal) bool {
	return d.Decimal.LessThan(other.Decimal)
}

// GreaterThan reports whether d > other.
func (d Decimal) GreaterThan(other Decimal) bool {
	return d.Decimal.GreaterThan(other.Decimal)
}

// HasScaleAtMost reports whether d has no more than the given number of
// decimal places. Used to reject credit quantities finer than the ledger's
// tonnage resolution.
func (d Decimal) HasScaleAtMost(places int32) bool {
	return d.Decimal.Round(places).Equal(d.Decimal)
}

// MarshalDynamoDBAttributeValue stores the decimal as a DynamoDB number.
func (d Decimal) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: d.Decimal.String()}, nil
}

// UnmarshalDynamoDBAttributeValue reads a DynamoDB number (or numeric string)
// back into a decimal.
func (d *Decimal) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		parsed, err := decimal.NewFromString(v.Value)
		if err != nil {
			return fmt.Errorf("failed to parse decimal attribute %q: %w", v.Value, err)
		}
		d.Decimal = parsed
	case *types.AttributeValueMemberS:
		parsed, err := decimal.NewFromString(v.Value)
		if err != nil {
			return fmt.Errorf("failed to parse decimal attribute %q: %w", v.Value, err)
		}
		d.Decimal = parsed
	case *types.AttributeValueMemberNULL:
		d.Decimal = decimal.Zero
	default:
		return fmt.Errorf("unsupported attribute type %T for decimal", av)
	}
	return nil
}
