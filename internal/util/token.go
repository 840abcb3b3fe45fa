package util

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateURLSafeToken : случайный токен из byteLength байт, пригодный для ссылок
func GenerateURLSafeToken(byteLength int) (string, error) {
	bytes := make([]byte, byteLength)

	_, err := rand.Read(bytes)
	if err != nil {
		return "", LogError("[util] ошибка генерации токена", err)
	}

	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
