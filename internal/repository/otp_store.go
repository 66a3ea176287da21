package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Chirandip-dev07/ujjivana/internal/util"

	"github.com/go-redis/redis/v8"
)

const otpTTL = 10 * time.Minute

// OTPStore keeps one-time password-reset codes in Redis. Codes expire after
// ten minutes and are deleted on first successful verification.
type OTPStore struct {
	Client *redis.Client
}

func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{Client: client}
}

func (s *OTPStore) Set(ctx context.Context, email, code string) error {
	return s.Client.Set(ctx, otpKey(email), code, otpTTL).Err()
}

// Verify checks the code and consumes it on success.
func (s *OTPStore) Verify(ctx context.Context, email, code string) error {
	stored, err := s.Client.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return util.ErrInvalidOTP
	}
	if err != nil {
		return err
	}
	if stored != code {
		return util.ErrInvalidOTP
	}
	return s.Client.Del(ctx, otpKey(email)).Err()
}

func otpKey(email string) string {
	return "otp:" + email
}
