package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spacesedan/esgpulse/internal/models"
)

const ARTICLES_COLLECTION = "articles"

// MongoStore keeps articles in a MongoDB collection. IDs are ObjectID hex
// strings.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(ARTICLES_COLLECTION),
	}
}

// EnsureIndexes creates the indexes used by listing, stats and duplicate
// lookups.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "analyzedAt", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "sentiment", Value: 1}}},
		{Keys: bson.D{{Key: "url", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("[MongoStore] failed to create indexes: %w", err)
	}
	slog.Info("[MongoStore] Indexes ensured")
	return nil
}

func (s *MongoStore) Insert(ctx context.Context, a *models.Article) error {
	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	if _, err := s.collection.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("[MongoStore] failed to insert article: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*models.Article, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, ErrInvalidID
	}

	var a models.Article
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if !primitive.IsValidObjectID(id) {
		return ErrInvalidID
	}

	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) FindDuplicate(ctx context.Context, url, title string) (*models.Article, error) {
	or := bson.A{bson.M{"title": title}}
	if url != "" {
		or = append(bson.A{bson.M{"url": url}}, or...)
	}

	var a models.Article
	err := s.collection.FindOne(ctx, bson.M{"$or": or}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *MongoStore) List(ctx context.Context, f ListFilter) (*models.ArticlePage, error) {
	f = f.Normalized()

	filter := bson.M{}
	if f.Sentiment != "" {
		filter["sentiment"] = f.Sentiment
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}

	dir := -1
	if f.Order == "asc" {
		dir = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: f.SortBy, Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(int64(f.Skip)).
		SetLimit(int64(f.Limit)).
		SetProjection(bson.M{"content": 0})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("[MongoStore] failed to list articles: %w", err)
	}
	articles := []models.Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, err
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.ArticlePage{
		Articles:   articles,
		Pagination: newPagination(total, f),
	}, nil
}

func (s *MongoStore) Stats(ctx context.Context, now time.Time) (*models.ArticleStats, error) {
	total, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	recent, err := s.collection.CountDocuments(ctx, bson.M{"analyzedAt": bson.M{"$gte": now.Add(-RECENT_WINDOW)}})
	if err != nil {
		return nil, err
	}

	stats := &models.ArticleStats{
		TotalArticles:         total,
		RecentArticles:        recent,
		SentimentDistribution: map[models.SentimentLabel]int64{},
		CategoryDistribution:  map[models.ESGCategory]models.CategoryStat{},
	}

	var sentimentRows []struct {
		ID    models.SentimentLabel `bson:"_id"`
		Count int64                 `bson:"count"`
	}
	if err := s.aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$sentiment"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}, &sentimentRows); err != nil {
		return nil, err
	}
	for _, r := range sentimentRows {
		stats.SentimentDistribution[r.ID] = r.Count
	}

	var categoryRows []struct {
		ID           models.ESGCategory `bson:"_id"`
		Count        int64              `bson:"count"`
		AvgSentiment float64            `bson:"avgSentiment"`
	}
	if err := s.aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avgSentiment", Value: bson.D{{Key: "$avg", Value: "$sentimentScore"}}},
		}}},
	}, &categoryRows); err != nil {
		return nil, err
	}
	for _, r := range categoryRows {
		stats.CategoryDistribution[r.ID] = models.CategoryStat{Count: r.Count, AvgSentiment: r.AvgSentiment}
	}

	var avgRows []struct {
		Average float64 `bson:"average"`
	}
	if err := s.aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$sentimentScore"}}},
		}}},
	}, &avgRows); err != nil {
		return nil, err
	}
	if len(avgRows) > 0 {
		stats.AverageSentiment = avgRows[0].Average
	}

	return stats, nil
}

func (s *MongoStore) Trends(ctx context.Context, now time.Time, days int) ([]models.TrendDay, error) {
	var rows []struct {
		ID struct {
			Date     string             `bson:"date"`
			Category models.ESGCategory `bson:"category"`
		} `bson:"_id"`
		Count        int64   `bson:"count"`
		AvgSentiment float64 `bson:"avgSentiment"`
	}

	err := s.aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "analyzedAt", Value: bson.D{{Key: "$gte", Value: trendCutoff(now, days)}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "date", Value: bson.D{{Key: "$dateToString", Value: bson.D{
					{Key: "format", Value: "%Y-%m-%d"},
					{Key: "date", Value: "$analyzedAt"},
				}}}},
				{Key: "category", Value: "$category"},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avgSentiment", Value: bson.D{{Key: "$avg", Value: "$sentimentScore"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.date", Value: 1}}}},
	}, &rows)
	if err != nil {
		return nil, err
	}

	trendRows := make([]trendRow, 0, len(rows))
	for _, r := range rows {
		trendRows = append(trendRows, trendRow{
			Date:         r.ID.Date,
			Category:     r.ID.Category,
			Count:        r.Count,
			AvgSentiment: r.AvgSentiment,
		})
	}
	return buildTrendDays(trendRows), nil
}

func (s *MongoStore) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("[MongoStore] aggregation failed: %w", err)
	}
	return cursor.All(ctx, out)
}

func (s *MongoStore) Close(ctx context.Context) error {
	slog.Info("[MongoStore] Disconnecting from MongoDB")
	return s.client.Disconnect(ctx)
}
