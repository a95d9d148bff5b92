package domain

// AuthPayload is the identity carried by a verified session token
type AuthPayload struct {
	UserID   string `json:"sub"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
