package domain

import "time"

type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleMerchant UserRole = "MERCHANT"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	// DeviceToken is the FCM registration token of the user's current
	// device; merchants receive approval-request pushes through it.
	DeviceToken string    `json:"-"`
	CreatedOn   time.Time `json:"created_on"`
}
