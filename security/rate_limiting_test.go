package security

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow_FirstRequestStartsWindow(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30, time.Minute)

	mock.ExpectIncr("ratelimit:user:u1").SetVal(1)
	mock.ExpectExpire("ratelimit:user:u1", time.Minute).SetVal(true)

	allowed, err := limiter.allow(context.Background(), "user:u1")

	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_Allow_WithinLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30, time.Minute)

	mock.ExpectIncr("ratelimit:user:u1").SetVal(15)

	allowed, err := limiter.allow(context.Background(), "user:u1")

	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_Allow_OverLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30, time.Minute)

	mock.ExpectIncr("ratelimit:10.0.0.7").SetVal(31)

	allowed, err := limiter.allow(context.Background(), "10.0.0.7")

	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRateLimiter_Allow_RedisError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30, time.Minute)

	mock.ExpectIncr("ratelimit:user:u1").SetErr(errors.New("connection refused"))

	_, err := limiter.allow(context.Background(), "user:u1")

	assert.Error(t, err)
}

func TestIsSuspiciousUserAgent(t *testing.T) {
	tests := []struct {
		userAgent string
		expected  bool
	}{
		{"", true},
		{"curl/7.88.1", true},
		{"python-requests/2.31", true},
		{"Googlebot/2.1", true},
		{"my-scraper", true},
		{"Wget/1.21", true},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)", false},
		{"okhttp/4.12.0", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isSuspiciousUserAgent(tt.userAgent), "user agent %q", tt.userAgent)
	}
}
