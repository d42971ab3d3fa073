package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/spacesedan/esgpulse/internal/models"
)

const ARTICLES_TABLE_NAME = "Articles"

// DynamoAPI is the part of the DynamoDB client DynamoStore calls.
type DynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, opts ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoStore keeps articles in a table keyed by "id". Listing and
// aggregation scan the table and run in process.
type DynamoStore struct {
	client DynamoAPI
	table  string
}

func NewDynamoStore(client DynamoAPI, table string) *DynamoStore {
	if table == "" {
		table = ARTICLES_TABLE_NAME
	}
	return &DynamoStore{client: client, table: table}
}

func (s *DynamoStore) Insert(ctx context.Context, a *models.Article) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("[DynamoDB] failed to marshal article: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] failed to put article: %w", err)
	}
	return nil
}

func (s *DynamoStore) Get(ctx context.Context, id string) (*models.Article, error) {
	if err := validUUID(id); err != nil {
		return nil, err
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] failed to get article: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var a models.Article
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *DynamoStore) Delete(ctx context.Context, id string) error {
	if err := validUUID(id); err != nil {
		return err
	}

	out, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(s.table),
		Key:          idKey(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] failed to delete article: %w", err)
	}
	if len(out.Attributes) == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DynamoStore) FindDuplicate(ctx context.Context, url, title string) (*models.Article, error) {
	all, err := s.scanAll(ctx)
	if err != nil {
		return nil, err
	}
	return findDuplicate(all, url, title), nil
}

func (s *DynamoStore) List(ctx context.Context, f ListFilter) (*models.ArticlePage, error) {
	all, err := s.scanAll(ctx)
	if err != nil {
		return nil, err
	}
	return listArticles(all, f), nil
}

func (s *DynamoStore) Stats(ctx context.Context, now time.Time) (*models.ArticleStats, error) {
	all, err := s.scanAll(ctx)
	if err != nil {
		return nil, err
	}
	return computeStats(all, now), nil
}

func (s *DynamoStore) Trends(ctx context.Context, now time.Time, days int) ([]models.TrendDay, error) {
	all, err := s.scanAll(ctx)
	if err != nil {
		return nil, err
	}
	return computeTrends(all, now, days), nil
}

func (s *DynamoStore) Close(ctx context.Context) error { return nil }

func (s *DynamoStore) scanAll(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})

	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Scan for articles failed: %w", err)
		}
		var page []models.Article
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal article page", slog.String("error", err.Error()))
			return nil, err
		}
		articles = append(articles, page...)
	}

	slog.Debug("[DynamoDB] Scanned articles", slog.Int("count", len(articles)))
	return articles, nil
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}}
}

