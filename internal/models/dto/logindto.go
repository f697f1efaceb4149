package dto

type LoginRequestDTO struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type LoginResponseDTO struct {
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
}

type RememberedUserResponseDTO struct {
	Username   string `json:"username"`
	Remembered bool   `json:"remembered"`
}

type RateLimitResponse struct {
	Message string `json:"message"`
}
