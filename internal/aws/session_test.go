package aws

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	creds := Credentials{
		AccessKeyID:     "AKIATEST",
		SecretAccessKey: "test-secret",
	}

	sess, err := NewSession(creds, "us-east-1")
	require.NoError(t, err)
	require.NotNil(t, sess)

	assert.Equal(t, "us-east-1", aws.StringValue(sess.Config.Region))

	value, err := sess.Config.Credentials.Get()
	require.NoError(t, err)
	assert.Equal(t, "AKIATEST", value.AccessKeyID)
	assert.Equal(t, "test-secret", value.SecretAccessKey)
}

func TestNewSessionEmptyCredentials(t *testing.T) {
	// An unset key pair still builds a session; the failure point is the
	// first API call, not construction.
	sess, err := NewSession(Credentials{}, "eu-west-1")
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", aws.StringValue(sess.Config.Region))
}
