package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imglab/moderation/pkg/imglab/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "memory", cfg.StorageType)
	assert.Equal(t, "pending/", cfg.PendingPrefix)
	assert.Equal(t, "approved/", cfg.ApprovedPrefix)
	assert.Equal(t, "rejected/", cfg.RejectedPrefix)
	assert.Equal(t, 600, cfg.ReadTTLSeconds)
	assert.Equal(t, 120, cfg.UploadTTLSeconds)
	assert.Equal(t, int64(2_000_000), cfg.MaxUploadBytes)
	assert.Equal(t, "image/jpeg,image/png,image/webp", cfg.AllowedTypes)
	assert.Equal(t, []string{"admin", "admins"}, cfg.AdminGroupList())
}

func TestLoadOptions(t *testing.T) {
	t.Run("valid options", func(t *testing.T) {
		cfg, err := config.Load(
			config.WithPort("9090"),
			config.WithEnvironment("production"),
			config.WithStatePrefixes("inbox/", "live/", "trash/"),
			config.WithGrantTTLs(60, 300),
			config.WithMaxUploadBytes(5_000_000),
			config.WithAllowedTypes("image/png,image/gif"),
			config.WithSNSTopic("arn:aws:sns:us-east-1:123456789012:uploads"),
		)
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, "inbox/", cfg.PendingPrefix)
		assert.Equal(t, 300, cfg.ReadTTLSeconds)
		assert.Equal(t, 60, cfg.UploadTTLSeconds)
		assert.Equal(t, int64(5_000_000), cfg.MaxUploadBytes)
		assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:uploads", cfg.SNSTopicARN)
	})

	t.Run("empty port fails", func(t *testing.T) {
		_, err := config.Load(config.WithPort(""))
		assert.Error(t, err)
	})

	t.Run("s3 without bucket fails", func(t *testing.T) {
		_, err := config.Load(config.WithS3Storage(config.S3Config{}))
		assert.Error(t, err)
	})

	t.Run("prefix without trailing slash fails", func(t *testing.T) {
		_, err := config.Load(config.WithStatePrefixes("pending", "approved/", "rejected/"))
		assert.Error(t, err)
	})

	t.Run("unknown content type fails", func(t *testing.T) {
		_, err := config.Load(config.WithAllowedTypes("image/jpeg,video/mp4"))
		assert.Error(t, err)
	})

	t.Run("non-positive TTLs fail", func(t *testing.T) {
		_, err := config.Load(config.WithGrantTTLs(0, 600))
		assert.Error(t, err)
	})
}

func TestWithEnv(t *testing.T) {
	t.Run("unset environment keeps defaults", func(t *testing.T) {
		cfg, err := config.Load(config.WithEnv())
		require.NoError(t, err)
		assert.Equal(t, "memory", cfg.StorageType)
		assert.Equal(t, "pending/", cfg.PendingPrefix)
	})

	t.Run("bucket switches storage to s3", func(t *testing.T) {
		t.Setenv("BUCKET", "imglab-uploads")
		t.Setenv("AWS_S3_REGION", "eu-west-1")
		t.Setenv("SIGNED_GET_TTL", "900")
		t.Setenv("MAX_BYTES", "4000000")
		t.Setenv("ALLOWED_TYPES", "image/jpeg,image/png")
		t.Setenv("PENDING_PREFIX", "queue/")
		t.Setenv("SNS_TOPIC_ARN", "arn:aws:sns:eu-west-1:123456789012:uploads")

		cfg, err := config.Load(config.WithEnv())
		require.NoError(t, err)

		assert.Equal(t, "s3", cfg.StorageType)
		assert.Equal(t, "imglab-uploads", cfg.S3.Bucket)
		assert.Equal(t, "eu-west-1", cfg.S3.Region)
		assert.Equal(t, 900, cfg.ReadTTLSeconds)
		assert.Equal(t, int64(4_000_000), cfg.MaxUploadBytes)
		assert.Equal(t, "image/jpeg,image/png", cfg.AllowedTypes)
		assert.Equal(t, "queue/", cfg.PendingPrefix)
		assert.Equal(t, "arn:aws:sns:eu-west-1:123456789012:uploads", cfg.SNSTopicARN)
	})

	t.Run("admin groups override", func(t *testing.T) {
		t.Setenv("ADMIN_GROUPS", "Moderators, Staff")

		cfg, err := config.Load(config.WithEnv())
		require.NoError(t, err)
		assert.Equal(t, []string{"moderators", "staff"}, cfg.AdminGroupList())
	})
}

func TestBuildService(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	svc, err := cfg.BuildService()
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
