package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/healthproof/healthproof/internal/email"
	"github.com/healthproof/healthproof/internal/user/internal/repository"
)

var (
	ErrCodeMismatch = errors.New("验证码不对")
	ErrCodeNotFound = repository.ErrCodeNotFound
)

type VerificationCodeSvc interface {
	Send(ctx context.Context, email string) error
	// Verify 校验通过即失效，一个验证码只能用一次
	Verify(ctx context.Context, email string, code string) error
}

type verificationCodeSvc struct {
	emailSvc email.Service
	repo     repository.VerificationCodeRepo
	from     string
}

func NewVerificationCodeSvc(emailSvc email.Service,
	repo repository.VerificationCodeRepo,
	from string,
) VerificationCodeSvc {
	return &verificationCodeSvc{
		emailSvc: emailSvc,
		repo:     repo,
		from:     from,
	}
}

func (s *verificationCodeSvc) Send(ctx context.Context, to string) error {
	code := s.generateCode()
	err := s.repo.SetEmailCode(ctx, to, code)
	if err != nil {
		return err
	}
	return s.emailSvc.SendMail(ctx, email.Mail{
		From:    s.from,
		To:      to,
		Subject: "HealthProof 登录验证码",
		Body:    []byte(fmt.Sprintf("你的验证码是 %s，五分钟内有效。", code)),
	})
}

func (s *verificationCodeSvc) Verify(ctx context.Context, to string, code string) error {
	stored, err := s.repo.GetEmailCode(ctx, to)
	if err != nil {
		return err
	}
	if stored != code {
		return ErrCodeMismatch
	}
	// 用过即作废
	return s.repo.DeleteEmailCode(ctx, to)
}

func (s *verificationCodeSvc) generateCode() string {
	// 使用 crypto/rand 生成随机字节
	bytes := make([]byte, 6)
	_, _ = rand.Read(bytes)
	// 将字节转换为六位数字验证码
	code := ""
	for _, b := range bytes {
		// 将字节值映射到 0-9 范围
		digit := int(b) % 10
		code += fmt.Sprintf("%d", digit)
	}
	return code
}
