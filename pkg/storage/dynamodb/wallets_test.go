package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
	"github.com/veridex/carbon-ledger/pkg/storage/dynamodb/mocks"
)

func TestCreateWallet(t *testing.T) {
	wallet := &models.Wallet{
		UserID:        "user-1",
		CashBalance:   mustDec(t, "1000.00"),
		CreditBalance: mustDec(t, "0"),
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.PutItemInput) bool {
			return *input.ConditionExpression == "attribute_not_exists(user_id)"
		})).Return(&dynamodb.PutItemOutput{}, nil)

		created, err := store.CreateWallet(context.Background(), wallet)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), created.Version)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Exists", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("PutItem", mock.Anything, mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{})

		_, err := store.CreateWallet(context.Background(), wallet)

		assert.ErrorIs(t, err, storage.ErrWalletExists)
	})
}

func TestGetWallet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		item, _ := attributevalue.MarshalMap(&models.Wallet{UserID: "user-1", CashBalance: mustDec(t, "42.50")})
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: item}, nil)

		wallet, err := store.GetWallet(context.Background(), "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", wallet.UserID)
		assert.True(t, wallet.CashBalance.Equal(mustDec(t, "42.50")))
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := testStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		_, err := store.GetWallet(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestListWallets(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := testStore(mockClient)

	items := make([]map[string]types.AttributeValue, 2)
	items[0], _ = attributevalue.MarshalMap(&models.Wallet{UserID: "user-1"})
	items[1], _ = attributevalue.MarshalMap(&models.Wallet{UserID: "user-2"})
	mockClient.On("Scan", mock.Anything, mock.Anything).Return(&dynamodb.ScanOutput{Items: items}, nil)

	wallets, err := store.ListWallets(context.Background())

	assert.NoError(t, err)
	assert.Len(t, wallets, 2)
}
