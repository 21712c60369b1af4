package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	apperrors "github.com/Gicheru-yvonne/instaclone-cloud-app/internal/errors"
)

// FirebaseVerifier 基于 Firebase Admin SDK 校验 ID 令牌
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier 创建一个新的 FirebaseVerifier 实例
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("初始化 Firebase 应用失败: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("初始化 Firebase Auth 客户端失败: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

// Verify 校验令牌并返回主体uid与邮箱声明
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, apperrors.New(apperrors.ErrUnauthorized, "令牌为空")
	}

	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidToken, "无效的令牌", err)
	}

	email, _ := decoded.Claims["email"].(string)
	return &Identity{UID: decoded.UID, Email: email}, nil
}
