package dto

// RegisterRequest 注册请求（multipart/form-data，头像必填，封面可选）
type RegisterRequest struct {
	Username string `form:"username" binding:"required,min=1,max=64"`
	Email    string `form:"email" binding:"required,email,max=255"`
	FullName string `form:"fullName" binding:"required,min=1,max=128"`
	Password string `form:"password" binding:"required,min=6,max=255"`
}

// LoginRequest 登录请求，用户名和邮箱至少填一个
type LoginRequest struct {
	Username string `json:"username" binding:"omitempty,max=64"`
	Email    string `json:"email" binding:"omitempty,max=255"`
	Password string `json:"password" binding:"required,min=1,max=255"`
}

// RefreshTokenRequest 刷新令牌请求，未携带 cookie 时从请求体读取
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=255"`
}

// TokenData 登录或刷新成功返回的令牌
type TokenData struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	User         *UserInfo `json:"user,omitempty"`
}
