package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
)

// Positions of the purchase operations inside the TransactWriteItems call.
// The cancellation reasons come back in the same order, which is how a
// conditional failure is mapped to a typed error.
const (
	purchaseOpProject = iota
	purchaseOpWallet
	purchaseOpTransaction
)

// ExecutePurchase atomically debits the project's available credits, moves
// cash out of and credits into the buyer's wallet, and appends the completed
// transaction record. The condition expressions re-check every precondition
// at commit time, so two validated purchases racing on the same project or
// wallet can never both deduct.
func (s *Store) ExecutePurchase(ctx context.Context, tx *models.Transaction, project *models.Project, wallet *models.Wallet) error {
	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	nowAV, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	qtyAV := &types.AttributeValueMemberN{Value: tx.Quantity.String()}
	costAV := &types.AttributeValueMemberN{Value: tx.TotalAmount.String()}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: debit the project's available pool. The status
				// condition keeps a concurrently rejected or retired project
				// from selling.
				Update: &types.Update{
					TableName:           aws.String(s.ProjectsTableName),
					Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: project.ID}},
					UpdateExpression:    aws.String("SET available_credits = available_credits - :qty, version = version + :inc, updated_at = :now"),
					ConditionExpression: aws.String("available_credits >= :qty AND version = :version AND #status = :active"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":qty":     qtyAV,
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", project.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
						":active":  &types.AttributeValueMemberS{Value: string(models.StatusActive)},
						":now":     nowAV,
					},
				},
			},
			{
				// Operation 2: move cash out of and credits into the buyer's wallet.
				Update: &types.Update{
					TableName:           aws.String(s.WalletsTableName),
					Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: wallet.UserID}},
					UpdateExpression:    aws.String("SET cash_balance = cash_balance - :cost, credit_balance = credit_balance + :qty, version = version + :inc, updated_at = :now"),
					ConditionExpression: aws.String("cash_balance >= :cost AND version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":cost":    costAV,
						":qty":     qtyAV,
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", wallet.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
						":now":     nowAV,
					},
				},
			},
			{
				// Operation 3: append the immutable transaction record.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return mapPurchaseCancellation(tce)
		}
		return fmt.Errorf("failed to execute purchase transaction: %w", err)
	}

	return nil
}

// mapPurchaseCancellation turns a cancelled TransactWriteItems call into the
// typed error of the operation whose condition failed. DynamoDB does not say
// which clause of a compound condition failed, so the engine re-reads and
// re-validates before trusting the classification.
func mapPurchaseCancellation(tce *types.TransactionCanceledException) error {
	for i, reason := range tce.CancellationReasons {
		if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
			continue
		}
		switch i {
		case purchaseOpProject:
			return storage.ErrInsufficientCredits
		case purchaseOpWallet:
			return storage.ErrInsufficientFunds
		case purchaseOpTransaction:
			return storage.ErrVersionConflict
		}
	}
	return fmt.Errorf("purchase transaction cancelled: %w", tce)
}
