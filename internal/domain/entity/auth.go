package entity

// AuthSession pairs an authenticated user with the token issued for it.
// It is a response value only and is never persisted.
type AuthSession struct {
	User  *User
	Token string
}
