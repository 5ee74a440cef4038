package dtos

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type BridgeInput struct {
	IDToken string `json:"idToken" binding:"required"`
}

// BridgeResponse carries the synthetic account plus a one-time password
// the client immediately uses for a normal password login.
type BridgeResponse struct {
	Success  bool   `json:"success"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
