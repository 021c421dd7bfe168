package otp

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"
)

// Sender is the provider surface the service needs. The TextLink client
// satisfies it.
type Sender interface {
	SendVerification(ctx context.Context, phone string) error
	VerifyCode(ctx context.Context, phone, code string) (bool, error)
}

// VerificationResult reports whether a submitted code matched.
type VerificationResult struct {
	Phone string `json:"phone"`
	Valid bool   `json:"valid"`
}

// Service drives phone verification through the SMS provider.
type Service interface {
	SendCode(ctx context.Context, phone string) error
	VerifyPhone(ctx context.Context, phone, code string) (*VerificationResult, error)
}

type service struct {
	sender Sender
}

// NewService builds an OTP service backed by the given provider client.
func NewService(sender Sender) (Service, error) {
	if sender == nil {
		return nil, fmt.Errorf("otp sender required")
	}
	return &service{sender: sender}, nil
}

// SendCode asks the provider to text a one-time code. The provider owns code
// generation and expiry; we only relay the request.
func (s *service) SendCode(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone required")
	}
	return s.sender.SendVerification(ctx, phone)
}

// VerifyPhone checks the submitted code with the provider. A wrong or expired
// code is a normal valid=false result; only provider outages surface as errors.
func (s *service) VerifyPhone(ctx context.Context, phone, code string) (*VerificationResult, error) {
	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)
	if phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone required")
	}
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "code required")
	}

	valid, err := s.sender.VerifyCode(ctx, phone, code)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify code")
	}
	return &VerificationResult{Phone: phone, Valid: valid}, nil
}
