package cqrs

// GetUserQuery fetches a single user by ID.
type GetUserQuery struct {
	UserID int64
}

// ListUsersQuery fetches every user.
type ListUsersQuery struct{}

// FindUserByEmailQuery fetches the user registered under an email address.
type FindUserByEmailQuery struct {
	EmailAddress string
}
