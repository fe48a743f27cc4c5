package repository

import (
	"context"

	"github.com/healthproof/healthproof/internal/user/internal/repository/cache"
)

var ErrCodeNotFound = cache.ErrKeyNotFound

type VerificationCodeRepo interface {
	SetEmailCode(ctx context.Context, email string, code string) error
	GetEmailCode(ctx context.Context, email string) (string, error)
	DeleteEmailCode(ctx context.Context, email string) error
}

type verificationRepository struct {
	cache.VerificationCodeCache
}

func NewVerificationCodeRepository(codeCache cache.VerificationCodeCache) VerificationCodeRepo {
	return &verificationRepository{
		VerificationCodeCache: codeCache,
	}
}
