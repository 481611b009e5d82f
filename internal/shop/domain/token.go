package domain

// AccessToken is what the login endpoint returns: a signed bearer token and
// how long it remains valid.
type AccessToken struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"` // always "bearer"
	ExpiresIn int64  `json:"expires_in"` // seconds until expiry
}
