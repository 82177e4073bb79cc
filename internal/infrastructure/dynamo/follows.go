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

// FollowRepo provides typed DynamoDB operations for the follows table.
// The (user_id, seller_id) pair is the table key, and Create writes
// conditionally, so a user can never follow the same store twice.
type FollowRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewFollowRepo(client *dynamodb.Client, tableName string) *FollowRepo {
	return &FollowRepo{client: client, tableName: tableName}
}

func (r *FollowRepo) Create(ctx context.Context, f *domain.Follow) error {
	item, err := attributevalue.MarshalMap(f)
	if err != nil {
		return fmt.Errorf("marshal follow: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(user_id)"),
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("already following: %w", domain.ErrConflict)
	}
	return err
}

func (r *FollowRepo) Delete(ctx context.Context, userID, sellerID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 compositeKey("user_id", userID, "seller_id", sellerID),
		ConditionExpression: aws.String("attribute_exists(user_id)"),
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("not following: %w", domain.ErrNotFound)
	}
	return err
}

// ListByUser returns the follows a user holds, newest key last.
func (r *FollowRepo) ListByUser(ctx context.Context, userID string) ([]domain.Follow, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	var follows []domain.Follow
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &follows); err != nil {
		return nil, err
	}
	return follows, nil
}

// CountBySeller returns how many users follow the seller.
func (r *FollowRepo) CountBySeller(ctx context.Context, sellerID string) (int, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("seller_id-index"),
		KeyConditionExpression: aws.String("seller_id = :s"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":s": &types.AttributeValueMemberS{Value: sellerID},
		},
		Select: types.SelectCount,
	})
	if err != nil {
		return 0, err
	}
	return int(out.Count), nil
}
