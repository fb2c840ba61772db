package dto

// TokenTypeBearer etiqueta fija devuelta junto al token.
const TokenTypeBearer = "Bearer"

// LoginRequest formulario de /auth/token (username = email).
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// TokenResponse salida de emisión y renovación de token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
