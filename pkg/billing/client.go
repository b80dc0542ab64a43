package billing

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
)

// DefaultRegion is where AWS publishes billing metrics.
const DefaultRegion = "us-east-1"

// ClientConfig holds the settings for the CloudWatch client.
type ClientConfig struct {
	Region          string // AWS region (default: us-east-1)
	Endpoint        string // Custom endpoint, e.g. LocalStack
	AccessKeyID     string // Optional, uses the default credential chain if empty
	SecretAccessKey string // Optional, uses the default credential chain if empty
}

// NewCloudWatchClient builds a CloudWatch client from the default AWS
// configuration chain plus any explicit overrides.
func NewCloudWatchClient(ctx context.Context, cfg ClientConfig) (*cloudwatch.Client, error) {
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var cwOpts []func(*cloudwatch.Options)
	if cfg.Endpoint != "" {
		cwOpts = append(cwOpts, func(o *cloudwatch.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return cloudwatch.NewFromConfig(awsCfg, cwOpts...), nil
}
