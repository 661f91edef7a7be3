package sns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkConfiguration(t *testing.T) {
	t.Run("EmptyTopicARN", func(t *testing.T) {
		_, err := New(Config{Region: "us-east-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "topic ARN is required")
	})

	t.Run("StaticCredentials", func(t *testing.T) {
		sink, err := New(Config{
			TopicARN:        "arn:aws:sns:us-east-1:123456789012:uploads",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
		})
		require.NoError(t, err)
		assert.NotNil(t, sink)
	})

	t.Run("CustomEndpoint", func(t *testing.T) {
		sink, err := New(Config{
			TopicARN:        "arn:aws:sns:us-east-1:123456789012:uploads",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
			Endpoint:        "http://localhost:4566",
		})
		require.NoError(t, err)
		assert.NotNil(t, sink)
	})
}
