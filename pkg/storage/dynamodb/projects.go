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
	"github.com/google/uuid"

	"github.com/veridex/carbon-ledger/pkg/lifecycle"
	"github.com/veridex/carbon-ledger/pkg/models"
	"github.com/veridex/carbon-ledger/pkg/storage"
)

const ownerIDIndex = "owner_id-index"

// CreateProject persists a registration submission. Status always starts at
// application regardless of what the caller put on the model.
func (s *Store) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	now := time.Now().UTC()
	project.ID = uuid.New().String()
	project.Status = models.StatusApplication
	project.CurrentStage = models.StatusApplication
	project.AvailableCredits = project.TotalCredits
	project.Version = 1
	project.CreatedAt = now
	project.UpdatedAt = now

	projectAV, err := attributevalue.MarshalMap(project)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.ProjectsTableName),
		Item:                projectAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to create project in DynamoDB: %w", err)
	}

	return project, nil
}

// GetProject retrieves a project by its ID.
func (s *Store) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.ProjectsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get project from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, storage.ErrNotFound)
	}

	var project models.Project
	if err := attributevalue.UnmarshalMap(result.Item, &project); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}
	if err := normalizeProjectStatus(&project); err != nil {
		return nil, err
	}

	return &project, nil
}

// ListProjects retrieves all projects.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.ProjectsTableName),
	}

	result, err := s.Client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan projects table: %w", err)
	}

	var projects []models.Project
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &projects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projects: %w", err)
	}
	for i := range projects {
		if err := normalizeProjectStatus(&projects[i]); err != nil {
			return nil, err
		}
	}

	return projects, nil
}

// ListProjectsByOwner retrieves the projects registered by one owner.
func (s *Store) ListProjectsByOwner(ctx context.Context, ownerID string) ([]models.Project, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.ProjectsTableName),
		IndexName:              aws.String(ownerIDIndex),
		KeyConditionExpression: aws.String("owner_id = :ownerID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ownerID": &types.AttributeValueMemberS{Value: ownerID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects by owner: %w", err)
	}

	var projects []models.Project
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &projects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projects: %w", err)
	}
	for i := range projects {
		if err := normalizeProjectStatus(&projects[i]); err != nil {
			return nil, err
		}
	}

	return projects, nil
}

// TransitionProject applies a status change computed by the lifecycle machine.
// The conditional check on status and version means a concurrent admin action
// loses cleanly instead of double-applying: the caller re-reads and re-decides.
func (s *Store) TransitionProject(ctx context.Context, project *models.Project, to models.ProjectStatus, reason string, at time.Time) (*models.Project, error) {
	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transition timestamp: %w", err)
	}

	updateExpr := "SET #status = :to, current_stage = :to, version = version + :inc, updated_at = :at"
	exprNames := map[string]string{"#status": "status"}
	exprValues := map[string]types.AttributeValue{
		":to":      &types.AttributeValueMemberS{Value: string(to)},
		":from":    &types.AttributeValueMemberS{Value: string(project.Status)},
		":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", project.Version)},
		":inc":     &types.AttributeValueMemberN{Value: "1"},
		":at":      atAV,
	}

	// Stamp the date field the target status calls for.
	switch to {
	case models.StatusValidation:
		updateExpr += ", validated_at = :at"
	case models.StatusAudited:
		updateExpr += ", audited_at = :at"
	case models.StatusRetired:
		updateExpr += ", retired_at = :at"
	case models.StatusRejected:
		updateExpr += ", rejection_reason = :reason"
		exprValues[":reason"] = &types.AttributeValueMemberS{Value: reason}
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.ProjectsTableName),
		Key:                       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: project.ID}},
		UpdateExpression:          aws.String(updateExpr),
		ConditionExpression:       aws.String("#status = :from AND version = :version"),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
		ReturnValues:              types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("project %s transition to %s: %w", project.ID, to, storage.ErrVersionConflict)
		}
		return nil, fmt.Errorf("failed to transition project: %w", err)
	}

	var updated models.Project
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transitioned project: %w", err)
	}

	return &updated, nil
}

// UpdateVerification applies admin verification metadata. Compliance flags
// flipping to true get their signing timestamp stamped in the same write.
func (s *Store) UpdateVerification(ctx context.Context, projectID string, update storage.VerificationUpdate, at time.Time) (*models.Project, error) {
	if update.Empty() {
		return s.GetProject(ctx, projectID)
	}

	atAV, err := attributevalue.Marshal(at)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verification timestamp: %w", err)
	}

	updateExpr := "SET updated_at = :at"
	exprValues := map[string]types.AttributeValue{":at": atAV}

	setString := func(field string, value *string, placeholder string) {
		if value == nil {
			return
		}
		updateExpr += fmt.Sprintf(", %s = %s", field, placeholder)
		exprValues[placeholder] = &types.AttributeValueMemberS{Value: *value}
	}
	setString("registry_name", update.RegistryName, ":registryName")
	setString("registry_project_id", update.RegistryProjectID, ":registryProjectID")
	setString("ownership_proof_url", update.OwnershipProofURL, ":ownershipProofURL")
	setString("pcn_document_url", update.PCNDocumentURL, ":pcnDocumentURL")

	setFlag := func(field string, value *bool, placeholder string) {
		if value == nil {
			return
		}
		updateExpr += fmt.Sprintf(", %s = %s", field, placeholder)
		exprValues[placeholder] = &types.AttributeValueMemberBOOL{Value: *value}
		if *value {
			updateExpr += fmt.Sprintf(", %s_at = :at", field)
		}
	}
	setFlag("ownership_proof_signed", update.OwnershipProofSigned, ":ownershipSigned")
	setFlag("no_harm_declaration_signed", update.NoHarmDeclarationSigned, ":noHarmSigned")
	setFlag("mandate_signed", update.MandateSigned, ":mandateSigned")

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.ProjectsTableName),
		Key:                       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: projectID}},
		UpdateExpression:          aws.String(updateExpr),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: exprValues,
		ReturnValues:              types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("project %s: %w", projectID, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update project verification: %w", err)
	}

	var updated models.Project
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated project: %w", err)
	}

	return &updated, nil
}

// normalizeProjectStatus maps legacy status vocabulary onto the staged
// pipeline and rejects unknown values at the store boundary.
func normalizeProjectStatus(p *models.Project) error {
	status, err := lifecycle.Normalize(string(p.Status))
	if err != nil {
		return fmt.Errorf("project %s: %w", p.ID, err)
	}
	p.Status = status
	p.CurrentStage = status
	return nil
}
