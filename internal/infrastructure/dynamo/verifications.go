package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ceptevar-api/internal/domain"
)

// VerificationRepo manages one-time verification codes.
// PK: channel, SK: identifier — at most one record per pair, enforced by a
// conditional put. All mutations are conditional writes so two concurrent
// verify calls cannot both move the same record.
type VerificationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVerificationRepo(client *dynamodb.Client, tableName string) *VerificationRepo {
	return &VerificationRepo{client: client, tableName: tableName}
}

// Purge deletes the record for the identifier. Idempotent: deleting a
// missing record is not an error.
func (r *VerificationRepo) Purge(ctx context.Context, ch domain.Channel, identifier string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("channel", string(ch), "identifier", identifier),
	})
	if err != nil {
		return fmt.Errorf("purge verification: %w", err)
	}
	return nil
}

// Create inserts a fresh pending record. Fails with domain.ErrConflict when a
// record already exists — callers purge first, and the condition closes the
// window where two concurrent requests both passed their purge.
func (r *VerificationRepo) Create(ctx context.Context, rec *domain.VerificationRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal verification: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(channel)"),
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("verification record exists: %w", domain.ErrConflict)
	}
	return err
}

func (r *VerificationRepo) Find(ctx context.Context, ch domain.Channel, identifier string) (*domain.VerificationRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            compositeKey("channel", string(ch), "identifier", identifier),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("verification not found: %w", domain.ErrNotFound)
	}
	var rec domain.VerificationRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// MarkVerified moves a pending record to verified. The record is kept for
// audit; it is only superseded by a later code request.
func (r *VerificationRepo) MarkVerified(ctx context.Context, ch domain.Channel, identifier string) error {
	return r.setStatus(ctx, ch, identifier, domain.VerificationVerified)
}

// MarkExpired persists the lazy expiry decision made on read.
func (r *VerificationRepo) MarkExpired(ctx context.Context, ch domain.Channel, identifier string) error {
	return r.setStatus(ctx, ch, identifier, domain.VerificationExpired)
}

// setStatus transitions pending -> status. The condition keeps transitions
// monotonic: a record that already left pending is never moved again.
func (r *VerificationRepo) setStatus(ctx context.Context, ch domain.Channel, identifier string, status domain.VerificationStatus) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 compositeKey("channel", string(ch), "identifier", identifier),
		UpdateExpression:    aws.String("SET #s = :new, #u = :now"),
		ConditionExpression: aws.String("#s = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#s": fieldStatus,
			"#u": fieldUpdatedAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":new":     &types.AttributeValueMemberS{Value: string(status)},
			":pending": &types.AttributeValueMemberS{Value: string(domain.VerificationPending)},
			":now":     &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("record is not pending: %w", domain.ErrConflict)
	}
	return err
}

// IncrementAttempts bumps the attempt counter from the value the caller read.
// The compare-and-set condition (attempts = current AND still pending) makes
// concurrent wrong-code submissions serialize instead of racing past the cap.
func (r *VerificationRepo) IncrementAttempts(ctx context.Context, ch domain.Channel, identifier string, current int) error {
	if current >= domain.MaxVerificationAttempts {
		return fmt.Errorf("attempt cap reached: %w", domain.ErrConflict)
	}
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 compositeKey("channel", string(ch), "identifier", identifier),
		UpdateExpression:    aws.String("SET #a = :next"),
		ConditionExpression: aws.String("#a = :cur AND #s = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#a": fieldAttempts,
			"#s": fieldStatus,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":next":    &types.AttributeValueMemberN{Value: strconv.Itoa(current + 1)},
			":cur":     &types.AttributeValueMemberN{Value: strconv.Itoa(current)},
			":pending": &types.AttributeValueMemberS{Value: string(domain.VerificationPending)},
		},
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("attempt counter moved concurrently: %w", domain.ErrConflict)
	}
	return err
}
