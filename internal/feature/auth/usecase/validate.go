package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"shop_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 6
	// maxPasswordLength はbcryptが受け付ける最大バイト数です。
	maxPasswordLength = 72
)

var validate = validator.New()

func validateFullName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: full name is required", ErrValidation)
	}
	return nil
}

func validateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d bytes long", ErrValidation, maxPasswordLength)
	}
	return nil
}

// roleOrDefault はロールを検証します。空の場合はCustomerになります。
func roleOrDefault(role string) (string, error) {
	if strings.TrimSpace(role) == "" {
		return entity.RoleCustomer, nil
	}
	r, ok := entity.NormalizeRole(strings.TrimSpace(role))
	if !ok {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	return r, nil
}

// statusOrDefault はステータスを検証します。空の場合はActiveになります。
func statusOrDefault(status string) (string, error) {
	if strings.TrimSpace(status) == "" {
		return entity.StatusActive, nil
	}
	s, ok := entity.NormalizeStatus(strings.TrimSpace(status))
	if !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s, nil
}

// classify は呼び出し元が判定するセンチネルエラーはそのまま返し、それ以外はErrPersistenceでラップします。
func classify(op string, err error) error {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, ErrFullNameAlreadyExists):
		return err
	default:
		return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
	}
}
