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

// ReviewRepo provides typed DynamoDB operations for the seller reviews table.
type ReviewRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewReviewRepo(client *dynamodb.Client, tableName string) *ReviewRepo {
	return &ReviewRepo{client: client, tableName: tableName}
}

func (r *ReviewRepo) Put(ctx context.Context, rev *domain.SellerReview) error {
	item, err := attributevalue.MarshalMap(rev)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ReviewRepo) Get(ctx context.Context, reviewID string) (*domain.SellerReview, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("review_id", reviewID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("review not found: %w", domain.ErrNotFound)
	}
	var rev domain.SellerReview
	if err := attributevalue.UnmarshalMap(out.Item, &rev); err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepo) ListBySeller(ctx context.Context, sellerID string) ([]domain.SellerReview, error) {
	return r.queryGSI(ctx, "seller_id-index", "seller_id", sellerID)
}

func (r *ReviewRepo) ListByProduct(ctx context.Context, productID string) ([]domain.SellerReview, error) {
	return r.queryGSI(ctx, "product_id-index", "product_id", productID)
}

func (r *ReviewRepo) queryGSI(ctx context.Context, index, attr, value string) ([]domain.SellerReview, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(attr + " = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, err
	}
	var reviews []domain.SellerReview
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepo) Update(ctx context.Context, reviewID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("review_id", reviewID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *ReviewRepo) Delete(ctx context.Context, reviewID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("review_id", reviewID),
	})
	return err
}
