package models

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Credentials struct {
	Email    string `json:"email" validate:"filled"`
	Password string `json:"password" validate:"filled"`
}

// Registration is the body of a sign-up request.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginResponse carries the user and token at the top level of the envelope.
type LoginResponse struct {
	Success bool   `json:"success"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}
