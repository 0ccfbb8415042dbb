package models

type User struct {
	UserID       int64  `json:"userId" db:"user_id"`
	Username     string `json:"username" db:"username" validate:"required,max=100"`
	Password     string `json:"password" db:"password" validate:"required"`
	EmailAddress string `json:"emailAddress" db:"email_address" validate:"required,email"`
	PhoneNumber  string `json:"phoneNumber" db:"phone_number" validate:"omitempty,max=20"`
}

// UserDTO is the projection of a User handed out by lookups that deliberately
// narrow what crosses the service boundary.
type UserDTO struct {
	UserID       int64  `json:"userId"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	EmailAddress string `json:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber"`
}

func NewUserDTO(u *User) *UserDTO {
	return &UserDTO{
		UserID:       u.UserID,
		Username:     u.Username,
		Password:     u.Password,
		EmailAddress: u.EmailAddress,
		PhoneNumber:  u.PhoneNumber,
	}
}
