package clients

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const AWS_DEFAULT_REGION = "us-west-2"

type AWSConfig struct {
	Region   string
	Endpoint string
}

// NewDynamoDBClient loads the default credential chain. A non-empty
// Endpoint points the client at a local DynamoDB.
func NewDynamoDBClient(ctx context.Context, cfg AWSConfig) (*dynamodb.Client, error) {
	region := cfg.Region
	if region == "" {
		region = AWS_DEFAULT_REGION
	}

	slog.Info("[AWSClient] Initializing AWS Config...", slog.String("region", region))
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		slog.Error("[AWSClient] Failed to load AWS config", slog.String("error", err.Error()))
		return nil, fmt.Errorf("[AWSClient] failed to load config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	slog.Info("[AWSClient] AWS Config Initialized")
	return client, nil
}
