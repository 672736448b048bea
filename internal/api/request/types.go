package request

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PressRequest is the request body for a memory game input
type PressRequest struct {
	Symbol int `json:"symbol"`
}
