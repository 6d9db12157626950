package dto

// ── 认证模块 DTO ──

// SignupRequest 注册请求
type SignupRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	FullName string `json:"fullName"`
}

// SigninRequest 登录请求
type SigninRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// SessionResponse 会话信息
type SessionResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // Access Token 有效期（秒）
}

// AuthResponse 注册/登录成功响应
type AuthResponse struct {
	Message string           `json:"message"`
	User    UserResponse     `json:"user"`
	Session *SessionResponse `json:"session,omitempty"`
}

// MeResponse 当前用户响应
type MeResponse struct {
	User UserResponse `json:"user"`
}

// MessageResponse 仅含提示信息的响应
type MessageResponse struct {
	Message string `json:"message"`
}
