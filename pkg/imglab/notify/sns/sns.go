package sns

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/imglab/moderation/pkg/imglab"
)

// Config options for the SNS notification sink
type Config struct {
	Region          string // AWS region
	TopicARN        string // SNS topic to publish to
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint (LocalStack etc.)
}

var _ imglab.NotificationSink = (*Sink)(nil)

// Sink publishes new-submission events to an SNS topic. The moderation
// service treats every publish failure as non-fatal, so this sink does no
// retrying of its own.
type Sink struct {
	client   *sns.Client
	topicARN string
}

// New creates a new SNS notification sink
func New(config Config) (*Sink, error) {
	if config.TopicARN == "" {
		return nil, errors.New("topic ARN is required")
	}

	if config.Region == "" {
		config.Region = "us-east-1"
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var snsOptions []func(*sns.Options)
	if config.Endpoint != "" {
		snsOptions = append(snsOptions, func(o *sns.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
		})
	}

	return &Sink{
		client:   sns.NewFromConfig(awsCfg, snsOptions...),
		topicARN: config.TopicARN,
	}, nil
}

// Publish sends one message to the configured topic.
func (s *Sink) Publish(ctx context.Context, subject, message string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("sns publish to %s: %w", s.topicARN, err)
	}
	return nil
}
