package dto

// RegisterForm describes the multipart registration fields. The image arrives as file part "file".
type RegisterForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// LoginForm describes the login form fields.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// ProfileView is rendered after a successful login.
type ProfileView struct {
	Name     string
	Email    string
	ImageURL string
}
