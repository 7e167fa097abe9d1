package dto

type LoginRequest struct {
	Token string `json:"token"`
}

type UserInfo struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"is_admin"`
}

type LoginResponse struct {
	User        UserInfo `json:"user"`
	IsFirstUser bool     `json:"is_first_user"`
}

type CreateUserRequest struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type UpdateSelfRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
