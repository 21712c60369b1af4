package user

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/auth"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/errors"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/service"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/util"
)

// AuthHandler 处理与认证相关的HTTP请求
type AuthHandler struct {
	verifier    auth.TokenVerifier
	userService *service.UserService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(verifier auth.TokenVerifier, userService *service.UserService) *AuthHandler {
	return &AuthHandler{verifier: verifier, userService: userService}
}

// Login 处理登录请求：校验身份令牌，首次登录时初始化用户文档，
// 然后把令牌写入 Cookie。
func (h *AuthHandler) Login(c *gin.Context) {
	var loginData struct {
		IDToken string `form:"idToken" json:"idToken" binding:"required"`
	}

	if err := c.ShouldBind(&loginData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	identity, err := h.verifier.Verify(c.Request.Context(), loginData.IDToken)
	if err != nil {
		util.Logger.Warn("登录令牌校验失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrUnauthorized, "无效的令牌", err))
		return
	}

	user, err := h.userService.LoginOrCreate(c.Request.Context(), identity.UID, identity.Email)
	if err != nil {
		util.Logger.Error("登录失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	// Cookie 仅透传令牌，后续请求由认证中间件重新校验
	c.SetCookie("token", loginData.IDToken, 3600, "/", "", false, true)

	errors.HandleSuccess(c, gin.H{"user": user}, "登录成功")
}

// Logout 清除登录Cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	errors.HandleSuccess(c, nil, "已退出登录")
}
