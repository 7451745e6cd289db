package awsclient

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the developer's AWS environment out of the tests.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	t.Setenv("AWS_REGION", "")
}

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("local endpoint gets static credentials", func(t *testing.T) {
		isolate(t)
		cfg, err := LoadConfig(ctx, Options{Region: "eu-west-1", Endpoint: "http://localhost:8000"})
		require.NoError(t, err)
		assert.Equal(t, "eu-west-1", cfg.Region)

		creds, err := cfg.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "local", creds.AccessKeyID)
	})

	t.Run("explicit keys", func(t *testing.T) {
		isolate(t)
		cfg, err := LoadConfig(ctx, Options{Region: "us-east-1", AccessKeyID: "AKID", SecretAccessKey: "secret"})
		require.NoError(t, err)

		creds, err := cfg.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "AKID", creds.AccessKeyID)
		assert.Equal(t, "secret", creds.SecretAccessKey)
	})

	t.Run("unknown profile", func(t *testing.T) {
		isolate(t)
		_, err := LoadConfig(ctx, Options{Profile: "does-not-exist"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading AWS config")
	})
}

func TestNewDynamoDB(t *testing.T) {
	client := NewDynamoDB(aws.Config{Region: "eu-west-1"}, "http://localhost:8000")
	assert.Equal(t, "http://localhost:8000", aws.ToString(client.Options().BaseEndpoint))

	client = NewDynamoDB(aws.Config{Region: "eu-west-1"}, "")
	assert.Nil(t, client.Options().BaseEndpoint)
}

type fakeSTS struct {
	out *sts.GetCallerIdentityOutput
	err error
}

func (f fakeSTS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return f.out, f.err
}

func TestCallerIdentity(t *testing.T) {
	ctx := context.Background()

	id, err := CallerIdentity(ctx, fakeSTS{out: &sts.GetCallerIdentityOutput{
		Account: aws.String("123456789012"),
		Arn:     aws.String("arn:aws:iam::123456789012:user/dev"),
		UserId:  aws.String("AIDEXAMPLE"),
	}})
	require.NoError(t, err)
	assert.Equal(t, Identity{
		Account: "123456789012",
		Arn:     "arn:aws:iam::123456789012:user/dev",
		UserID:  "AIDEXAMPLE",
	}, id)

	denied := errors.New("access denied")
	_, err = CallerIdentity(ctx, fakeSTS{err: denied})
	require.ErrorIs(t, err, denied)
}
