package models

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
)

func TestDecimalDynamoDBRoundTrip(t *testing.T) {
	price, err := DecimalFromString("20.50")
	assert.NoError(t, err)

	av, err := attributevalue.Marshal(price)
	assert.NoError(t, err)

	n, ok := av.(*types.AttributeValueMemberN)
	assert.True(t, ok, "decimal must marshal as a native number attribute")
	assert.Equal(t, "20.5", n.Value)

	var back Decimal
	assert.NoError(t, attributevalue.Unmarshal(av, &back))
	assert.True(t, back.Equal(price))
}

func TestDecimalUnmarshalVariants(t *testing.T) {
	t.Run("Numeric String", func(t *testing.T) {
		var d Decimal
		assert.NoError(t, d.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberS{Value: "100.25"}))
		assert.Equal(t, "100.25", d.String())
	})

	t.Run("Null Is Zero", func(t *testing.T) {
		var d Decimal
		assert.NoError(t, d.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberNULL{Value: true}))
		assert.True(t, d.IsZero())
	})

	t.Run("Garbage Rejected", func(t *testing.T) {
		var d Decimal
		assert.Error(t, d.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberN{Value: "not-a-number"}))
		assert.Error(t, d.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberBOOL{Value: true}))
	})
}

func TestDecimalArithmeticStaysExact(t *testing.T) {
	// 0.1 + 0.2 is the classic binary float trap; decimals must not drift.
	a, _ := DecimalFromString("0.1")
	b, _ := DecimalFromString("0.2")
	sum, _ := DecimalFromString("0.3")
	assert.True(t, a.Add(b).Equal(sum))

	quantity, _ := DecimalFromString("10")
	unit, _ := DecimalFromString("20.50")
	total, _ := DecimalFromString("205.00")
	assert.True(t, quantity.Mul(unit).Round(CurrencyScale).Equal(total))
}

func TestHasScaleAtMost(t *testing.T) {
	fine, _ := DecimalFromString("1.0001")
	assert.True(t, fine.HasScaleAtMost(CreditScale))

	tooFine, _ := DecimalFromString("1.00001")
	assert.False(t, tooFine.HasScaleAtMost(CreditScale))

	whole := DecimalFromInt(42)
	assert.True(t, whole.HasScaleAtMost(0))
}
