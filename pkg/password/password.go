package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinLength 密码最小长度
const MinLength = 6

var ErrTooShort = errors.New("password must be at least 6 characters")

// Hash 生成密码哈希
func Hash(plain string) (string, error) {
	if len(plain) < MinLength {
		return "", ErrTooShort
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify 校验密码
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
