package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/veridex/carbon-ledger/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses. Tests mock
// this interface.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB. Every multi-row
// ledger mutation goes through a single TransactWriteItems call with condition
// expressions on the row versions, so concurrent writers either commit a
// consistent unit or fail cleanly.
type Store struct {
	Client                DynamoDBAPI
	WalletsTableName      string
	ProjectsTableName     string
	TransactionsTableName string
	CertificatesTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, walletsTable, projectsTable, transactionsTable, certificatesTable string) *Store {
	return &Store{
		Client:                client,
		WalletsTableName:      walletsTable,
		ProjectsTableName:     projectsTable,
		TransactionsTableName: transactionsTable,
		CertificatesTableName: certificatesTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
