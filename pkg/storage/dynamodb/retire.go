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

const (
	retireOpWallet = iota
	retireOpCertificate
)

// ExecuteRetirement atomically debits the wallet's credit balance and
// persists the immutable retirement certificate. The conditional put on the
// serial number is the global uniqueness constraint: concurrent issuance with
// the same serial loses with ErrSerialCollision and the issuer retries with a
// fresh one.
func (s *Store) ExecuteRetirement(ctx context.Context, cert *models.RetirementCertificate, wallet *models.Wallet) error {
	certAV, err := attributevalue.MarshalMap(cert)
	if err != nil {
		return fmt.Errorf("failed to marshal certificate: %w", err)
	}

	nowAV, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: permanently remove the credits from circulation.
				Update: &types.Update{
					TableName:           aws.String(s.WalletsTableName),
					Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: wallet.UserID}},
					UpdateExpression:    aws.String("SET credit_balance = credit_balance - :qty, version = version + :inc, updated_at = :now"),
					ConditionExpression: aws.String("credit_balance >= :qty AND version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":qty":     &types.AttributeValueMemberN{Value: cert.CreditsRetired.String()},
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", wallet.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
						":now":     nowAV,
					},
				},
			},
			{
				// Operation 2: mint the certificate. Never overwrites.
				Put: &types.Put{
					TableName:           aws.String(s.CertificatesTableName),
					Item:                certAV,
					ConditionExpression: aws.String("attribute_not_exists(serial_number)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return mapRetirementCancellation(tce)
		}
		return fmt.Errorf("failed to execute retirement transaction: %w", err)
	}

	return nil
}

func mapRetirementCancellation(tce *types.TransactionCanceledException) error {
	for i, reason := range tce.CancellationReasons {
		if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
			continue
		}
		switch i {
		case retireOpWallet:
			return storage.ErrInsufficientCredits
		case retireOpCertificate:
			return storage.ErrSerialCollision
		}
	}
	return fmt.Errorf("retirement transaction cancelled: %w", tce)
}
