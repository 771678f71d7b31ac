package model

// Registration carries the submitted registration form.
// Upload is nil when the request had no profile image.
type Registration struct {
	Name     string
	Email    string
	Password string
	Upload   *Upload
}
