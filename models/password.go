package models

// PasswordSetRequest carries a new privacy password and its confirmation.
type PasswordSetRequest struct {
	Password     string
	Confirmation string
}

// PasswordChangeRequest carries the current password and the replacement
// entered twice.
type PasswordChangeRequest struct {
	Current      string
	New          string
	Confirmation string
}
