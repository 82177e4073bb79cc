package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ceptevar-api/internal/domain"
)

// CardRepo provides typed DynamoDB operations for the credit cards table.
// Only tokenized data is stored; the table never sees a PAN.
type CardRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCardRepo(client *dynamodb.Client, tableName string) *CardRepo {
	return &CardRepo{client: client, tableName: tableName}
}

func (r *CardRepo) Put(ctx context.Context, c *domain.CreditCard) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal card: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *CardRepo) Get(ctx context.Context, cardID string) (*domain.CreditCard, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("card_id", cardID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("card not found: %w", domain.ErrNotFound)
	}
	var c domain.CreditCard
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CardRepo) ListByUser(ctx context.Context, userID string) ([]domain.CreditCard, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	var cards []domain.CreditCard
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *CardRepo) Delete(ctx context.Context, cardID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("card_id", cardID),
	})
	return err
}
