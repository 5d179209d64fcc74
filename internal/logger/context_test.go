package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValuesRoundTrip(t *testing.T) {
	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithUserID(ctx, "user-1")
	ctx = WithBusinessID(ctx, "biz-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-1", GetUserID(ctx))
	assert.Equal(t, "biz-1", GetBusinessID(ctx))
}

func TestFromContext_EmptyContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.Equal(t, "", GetRequestID(context.Background()))
}
