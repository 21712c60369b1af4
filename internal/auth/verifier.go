package auth

import "context"

// Identity 是身份提供方验证令牌后给出的主体信息
type Identity struct {
	UID   string
	Email string
}

// TokenVerifier 定义身份令牌的校验接口。
// 令牌的签发与校验由外部身份提供方负责，本服务只消费结果。
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
