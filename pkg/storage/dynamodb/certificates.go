package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
)

const (
	certUserIDIndex    = "user_id-index"
	certProjectIDIndex = "project_id-index"
)

// GetCertificate retrieves a certificate by its serial number. This is the
// public verification lookup: a serial either resolves to exactly one
// immutable record or nothing.
func (s *Store) GetCertificate(ctx context.Context, serialNumber string) (*models.RetirementCertificate, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"serial_number": serialNumber})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal serial number: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.CertificatesTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("certificate %s: %w", serialNumber, storage.ErrNotFound)
	}

	var cert models.RetirementCertificate
	if err := attributevalue.UnmarshalMap(result.Item, &cert); err != nil {
		return nil, fmt.Errorf("failed to unmarshal certificate: %w", err)
	}

	return &cert, nil
}

// ListCertificatesByUser retrieves all certificates held by a user.
func (s *Store) ListCertificatesByUser(ctx context.Context, userID string) ([]models.RetirementCertificate, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.CertificatesTableName),
		IndexName:              aws.String(certUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :userID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userID": &types.AttributeValueMemberS{Value: userID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query certificates by user: %w", err)
	}

	var certs []models.RetirementCertificate
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &certs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal certificates: %w", err)
	}

	return certs, nil
}

// ListCertificates retrieves every certificate via the constant-partition index.
func (s *Store) ListCertificates(ctx context.Context) ([]models.RetirementCertificate, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.CertificatesTableName),
		IndexName:              aws.String(gsi1Index),
		KeyConditionExpression: aws.String("gsi1pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: certPartition},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query all certificates: %w", err)
	}

	var certs []models.RetirementCertificate
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &certs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal certificates: %w", err)
	}

	return certs, nil
}

// ListCertificatesByProject retrieves all certificates referencing a project.
func (s *Store) ListCertificatesByProject(ctx context.Context, projectID string) ([]models.RetirementCertificate, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.CertificatesTableName),
		IndexName:              aws.String(certProjectIDIndex),
		KeyConditionExpression: aws.String("project_id = :projectID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":projectID": &types.AttributeValueMemberS{Value: projectID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query certificates by project: %w", err)
	}

	var certs []models.RetirementCertificate
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &certs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal certificates: %w", err)
	}

	return certs, nil
}
