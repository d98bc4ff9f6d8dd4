package dto

// RegisterRequest HTTP注册请求
// 密码规则(8-20位,含字母和数字)由领域服务校验,这里只做基础约束
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"passw0rd123"`
	Nickname string `json:"nickname" binding:"required,min=2,max=50" example:"爱读书的小明"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required" example:"passw0rd123"`
}

// RefreshTokenRequest HTTP刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse HTTP用户信息响应
type UserResponse struct {
	ID       uint   `json:"id" example:"1"`
	Email    string `json:"email" example:"reader@example.com"`
	Nickname string `json:"nickname" example:"爱读书的小明"`
	Role     string `json:"role" example:"user"`
}

// LoginResponse HTTP登录响应
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in" example:"7200"` // Access Token过期时间(秒)
}
