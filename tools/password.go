package tools

import "golang.org/x/crypto/bcrypt"

// DefaultPassword 新建学生账号的初始密码，登录后会提示尽快修改
const DefaultPassword = "12345678"

// PasswordHash 生成密码的 bcrypt 哈希
func PasswordHash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// PasswordCompare 比较明文密码和哈希是否匹配
func PasswordCompare(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
