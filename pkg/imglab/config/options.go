package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithMemoryStorage selects the in-memory blob store
func WithMemoryStorage() Option {
	return func(c *ServerConfig) error {
		c.StorageType = "memory"
		return nil
	}
}

// WithS3Storage selects the S3 blob store with the given connection settings
func WithS3Storage(s3 S3Config) Option {
	return func(c *ServerConfig) error {
		if s3.Bucket == "" {
			return fmt.Errorf("bucket cannot be empty")
		}
		c.StorageType = "s3"
		c.S3 = s3
		return nil
	}
}

// WithStatePrefixes sets the three moderation state prefixes
func WithStatePrefixes(pending, approved, rejected string) Option {
	return func(c *ServerConfig) error {
		c.PendingPrefix = pending
		c.ApprovedPrefix = approved
		c.RejectedPrefix = rejected
		return nil
	}
}

// WithGrantTTLs sets the write-grant and read-grant lifetimes in seconds
func WithGrantTTLs(uploadSeconds, readSeconds int) Option {
	return func(c *ServerConfig) error {
		c.UploadTTLSeconds = uploadSeconds
		c.ReadTTLSeconds = readSeconds
		return nil
	}
}

// WithMaxUploadBytes sets the content-length bound for write grants
func WithMaxUploadBytes(n int64) Option {
	return func(c *ServerConfig) error {
		c.MaxUploadBytes = n
		return nil
	}
}

// WithAllowedTypes sets the comma-separated content-type allow-list
func WithAllowedTypes(types string) Option {
	return func(c *ServerConfig) error {
		c.AllowedTypes = types
		return nil
	}
}

// WithSNSTopic enables new-submission notifications to the given topic
func WithSNSTopic(topicARN string) Option {
	return func(c *ServerConfig) error {
		c.SNSTopicARN = topicARN
		return nil
	}
}

// envConfig is the cleanenv binding for the environment surface.
type envConfig struct {
	Port        string `env:"PORT" env-default:""`
	Environment string `env:"ENVIRONMENT" env-default:""`

	Bucket          string `env:"BUCKET" env-default:""`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
	Endpoint        string `env:"AWS_S3_ENDPOINT" env-default:""`
	UseSSL          bool   `env:"AWS_S3_USE_SSL" env-default:"true"`
	UsePathStyle    bool   `env:"AWS_S3_PATH_STYLE" env-default:"false"`
	CreateBucket    bool   `env:"AWS_S3_CREATE_BUCKET" env-default:"false"`

	PendingPrefix  string `env:"PENDING_PREFIX" env-default:""`
	ApprovedPrefix string `env:"APPROVED_PREFIX" env-default:""`
	RejectedPrefix string `env:"REJECTED_PREFIX" env-default:""`

	SignedGetTTL int    `env:"SIGNED_GET_TTL" env-default:"0"`
	UploadTTL    int    `env:"UPLOAD_TTL" env-default:"0"`
	MaxBytes     int64  `env:"MAX_BYTES" env-default:"0"`
	AllowedTypes string `env:"ALLOWED_TYPES" env-default:""`

	SNSTopicARN string `env:"SNS_TOPIC_ARN" env-default:""`
	SNSEndpoint string `env:"SNS_ENDPOINT" env-default:""`

	JWTSecret   string `env:"JWT_SECRET" env-default:""`
	AdminGroups string `env:"ADMIN_GROUPS" env-default:""`
}

// WithEnv applies environment variable overrides. Unset variables leave the
// current (default or previously set) values untouched. BUCKET switches the
// storage type to s3.
func WithEnv() Option {
	return func(c *ServerConfig) error {
		var env envConfig
		if err := cleanenv.ReadEnv(&env); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}

		if env.Port != "" {
			c.Port = env.Port
		}
		if env.Environment != "" {
			c.Environment = env.Environment
		}

		if env.Bucket != "" {
			c.StorageType = "s3"
			c.S3 = S3Config{
				Region:                 env.Region,
				Bucket:                 env.Bucket,
				AccessKeyID:            env.AccessKeyID,
				SecretAccessKey:        env.SecretAccessKey,
				Endpoint:               env.Endpoint,
				UseSSL:                 env.UseSSL,
				UsePathStyle:           env.UsePathStyle,
				CreateBucketIfNotExist: env.CreateBucket,
			}
		}

		if env.PendingPrefix != "" {
			c.PendingPrefix = env.PendingPrefix
		}
		if env.ApprovedPrefix != "" {
			c.ApprovedPrefix = env.ApprovedPrefix
		}
		if env.RejectedPrefix != "" {
			c.RejectedPrefix = env.RejectedPrefix
		}

		if env.SignedGetTTL > 0 {
			c.ReadTTLSeconds = env.SignedGetTTL
		}
		if env.UploadTTL > 0 {
			c.UploadTTLSeconds = env.UploadTTL
		}
		if env.MaxBytes > 0 {
			c.MaxUploadBytes = env.MaxBytes
		}
		if env.AllowedTypes != "" {
			c.AllowedTypes = env.AllowedTypes
		}

		if env.SNSTopicARN != "" {
			c.SNSTopicARN = env.SNSTopicARN
		}
		if env.SNSEndpoint != "" {
			c.SNSEndpoint = env.SNSEndpoint
		}

		if env.JWTSecret != "" {
			c.JWTSecret = env.JWTSecret
		}
		if env.AdminGroups != "" {
			c.AdminGroups = env.AdminGroups
		}

		return nil
	}
}
