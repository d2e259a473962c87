package models

// User is a registered account. ID is the users document key and is never
// written inside the stored record.
type User struct {
	ID        string    `json:"id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"password,omitempty"` // bcrypt hash; cleared before responding
	CreatedAt Timestamp `json:"createdAt"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,max=100"`
}

// LoginRequest is the body of POST /auth/login. It is accepted as JSON or as an
// OAuth2 password-flow form, where the email travels in "username".
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required_without=Username"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Login returns the email the client logs in with.
func (r LoginRequest) Login() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}
