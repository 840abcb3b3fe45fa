package security

import (
	"fmt"
	pkgerrors "food-inventory/pkg/errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	// maxPasswordBytes : bcrypt не принимает пароли длиннее 72 байт
	maxPasswordBytes      = 72
	PasswordPolicyMessage = "the password is invalid: it must be 8 characters to 72 bytes long and include an uppercase letter, a lowercase letter, a digit and a special character"
)

// dummyHash : сравнение с ним выравнивает время ответа для несуществующего email
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хэширования пароля: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SpendPasswordCheck : холостая проверка пароля, результат не важен
func SpendPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// ValidatePasswordPolicy : от 8 символов до 72 байт, заглавная, строчная, цифра и не буквенно-цифровой символ.
// Любое нарушение дает одну и ту же ошибку
func ValidatePasswordPolicy(password string) error {
	if len([]rune(password)) < minPasswordLength || len(password) > maxPasswordBytes {
		return pkgerrors.ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		case !unicode.IsLetter(c):
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return pkgerrors.ErrWeakPassword
	}
	return nil
}
