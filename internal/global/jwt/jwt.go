package jwt

import (
	"time"

	"dormitory-management-system/config"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// 角色等级，路由中间件按最小等级放行
const (
	RoleStudent = 0 // 学生
	RoleManager = 1 // 宿舍管理员
)

// Payload 是签发令牌时携带的用户信息
type Payload struct {
	UserID string `json:"user_id"` // 学号或工号
	RoleID int    `json:"role_id"`
}

// Claims JWT 载荷
type Claims struct {
	Payload
	jwtlib.RegisteredClaims
}

// CreateToken 签发访问令牌
func CreateToken(payload Payload) string {
	cfg := config.Get().JWT
	now := time.Now()
	claims := &Claims{
		Payload: payload,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Duration(cfg.AccessExpire) * time.Second)),
			Issuer:    "dormitory-management-system",
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.AccessSecret))
	if err != nil {
		// HS256 对字节签名不会失败，除非密钥类型错误
		panic(err)
	}
	return signed
}

// ParseToken 解析并校验访问令牌
func ParseToken(tokenString string) (*Claims, bool) {
	claims := &Claims{}
	token, err := jwtlib.ParseWithClaims(tokenString, claims, func(t *jwtlib.Token) (any, error) {
		return []byte(config.Get().JWT.AccessSecret), nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
