package cqrs

type CreateUserCommand struct {
	Username     string
	Password     string
	EmailAddress string
	PhoneNumber  string
}

// UpdateUserCommand replaces the stored details of UserID. An empty Password
// keeps the stored credential.
type UpdateUserCommand struct {
	UserID       int64
	Username     string
	Password     string
	EmailAddress string
	PhoneNumber  string
}
