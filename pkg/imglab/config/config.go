package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imglab/moderation/pkg/imglab"
	snssink "github.com/imglab/moderation/pkg/imglab/notify/sns"
	memorystorage "github.com/imglab/moderation/pkg/imglab/storage/memory"
	s3storage "github.com/imglab/moderation/pkg/imglab/storage/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:             "8080",
		Environment:      "development",
		StorageType:      "memory",
		PendingPrefix:    "pending/",
		ApprovedPrefix:   "approved/",
		RejectedPrefix:   "rejected/",
		ReadTTLSeconds:   600,
		UploadTTLSeconds: 120,
		MaxUploadBytes:   2_000_000,
		AllowedTypes:     "image/jpeg,image/png,image/webp",
		AdminGroups:      "admin,admins",
	}
}

// ServerConfig represents server configuration for the moderation service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Storage configuration
	StorageType string // "memory", "s3"
	S3          S3Config

	// Moderation pipeline surface
	PendingPrefix    string
	ApprovedPrefix   string
	RejectedPrefix   string
	ReadTTLSeconds   int
	UploadTTLSeconds int
	MaxUploadBytes   int64
	AllowedTypes     string // comma-separated content types

	// Notifications (optional; empty topic disables)
	SNSTopicARN string
	SNSEndpoint string

	// Identity
	JWTSecret   string
	AdminGroups string // comma-separated group names granting admin access
}

// S3Config holds the S3/MinIO connection settings.
type S3Config struct {
	Region                 string
	Bucket                 string
	AccessKeyID            string
	SecretAccessKey        string
	Endpoint               string
	UseSSL                 bool
	UsePathStyle           bool
	CreateBucketIfNotExist bool
}

// knownExtensions maps admissible content types to file extensions. A
// configured allow-list entry outside this table is a configuration error.
var knownExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
	"image/avif": "avif",
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.StorageType != "memory" && c.StorageType != "s3" {
		return errors.New("storage_type must be 'memory' or 's3'")
	}
	if c.StorageType == "s3" && c.S3.Bucket == "" {
		return errors.New("bucket is required when using s3 storage")
	}

	if _, err := c.Prefixes(); err != nil {
		return err
	}
	if _, err := c.allowedTypeMap(); err != nil {
		return err
	}

	if c.ReadTTLSeconds <= 0 || c.UploadTTLSeconds <= 0 {
		return errors.New("grant TTLs must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("max upload size must be positive")
	}

	return nil
}

// Prefixes returns the configured state prefixes.
func (c *ServerConfig) Prefixes() (imglab.Prefixes, error) {
	p := imglab.Prefixes{
		Pending:  c.PendingPrefix,
		Approved: c.ApprovedPrefix,
		Rejected: c.RejectedPrefix,
	}
	if err := p.Validate(); err != nil {
		return imglab.Prefixes{}, err
	}
	return p, nil
}

func (c *ServerConfig) allowedTypeMap() (map[string]string, error) {
	types := make(map[string]string)
	for _, entry := range strings.Split(c.AllowedTypes, ",") {
		ct := strings.ToLower(strings.TrimSpace(entry))
		if ct == "" {
			continue
		}
		ext, ok := knownExtensions[ct]
		if !ok {
			return nil, fmt.Errorf("allowed content type %q has no known file extension", ct)
		}
		types[ct] = ext
	}
	if len(types) == 0 {
		return nil, errors.New("allowed content-type list must not be empty")
	}
	return types, nil
}

// AdminGroupList returns the normalized group names granting admin access.
func (c *ServerConfig) AdminGroupList() []string {
	groups := make([]string, 0, 2)
	for _, g := range strings.Split(c.AdminGroups, ",") {
		if g = strings.ToLower(strings.TrimSpace(g)); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}

// BuildService creates a moderation Service from the server configuration.
func (c *ServerConfig) BuildService() (imglab.Service, error) {
	store, err := c.buildBlobStore()
	if err != nil {
		return nil, err
	}

	sink, err := c.buildSink()
	if err != nil {
		return nil, err
	}

	prefixes, err := c.Prefixes()
	if err != nil {
		return nil, err
	}
	allowed, err := c.allowedTypeMap()
	if err != nil {
		return nil, err
	}

	return imglab.New(
		imglab.WithBlobStore(store),
		imglab.WithNotifier(sink),
		imglab.WithPrefixes(prefixes),
		imglab.WithAllowedTypes(allowed),
		imglab.WithUploadTTL(time.Duration(c.UploadTTLSeconds)*time.Second),
		imglab.WithReadTTL(time.Duration(c.ReadTTLSeconds)*time.Second),
		imglab.WithMaxUploadBytes(c.MaxUploadBytes),
	)
}

func (c *ServerConfig) buildBlobStore() (imglab.BlobStore, error) {
	switch c.StorageType {
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 c.S3.Region,
			Bucket:                 c.S3.Bucket,
			AccessKeyID:            c.S3.AccessKeyID,
			SecretAccessKey:        c.S3.SecretAccessKey,
			Endpoint:               c.S3.Endpoint,
			UseSSL:                 c.S3.UseSSL,
			UsePathStyle:           c.S3.UsePathStyle,
			CreateBucketIfNotExist: c.S3.CreateBucketIfNotExist,
		})
	default:
		return memorystorage.New(), nil
	}
}

func (c *ServerConfig) buildSink() (imglab.NotificationSink, error) {
	if c.SNSTopicARN == "" {
		return imglab.NewNoopSink(), nil
	}
	return snssink.New(snssink.Config{
		Region:          c.S3.Region,
		TopicARN:        c.SNSTopicARN,
		AccessKeyID:     c.S3.AccessKeyID,
		SecretAccessKey: c.S3.SecretAccessKey,
		Endpoint:        c.SNSEndpoint,
	})
}
