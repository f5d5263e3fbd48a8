package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User holds the structure for the users collection in mongo
type User struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details UserDetails        `json:"user" bson:"user"`
	Version int32              `json:"__v" bson:"__v"`
}

// UserDetails holds the structure for the inner user details
type UserDetails struct {
	Username  string `json:"username" bson:"username"`
	Email     string `json:"email" bson:"email"`
	Password  string `json:"password" bson:"password"` // bcrypt hash
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`

	Profile Profile `json:"profile" bson:"profile"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Profile holds the staff profile attached to a user. A user without a
// profile (empty role) has no access to any workflow surface.
type Profile struct {
	Role        Role   `json:"role" bson:"role"`
	EmployeeID  string `json:"employeeID" bson:"employeeID"`
	PhoneNumber string `json:"phoneNumber" bson:"phoneNumber"`
	Department  string `json:"department" bson:"department"`
	IsActive    bool   `json:"isActive" bson:"isActive"`
}

// DisplayName returns the user's full name, falling back to the username
func (u *User) DisplayName() string {
	if u.Details.FirstName == "" && u.Details.LastName == "" {
		return u.Details.Username
	}
	if u.Details.FirstName == "" {
		return u.Details.LastName
	}
	if u.Details.LastName == "" {
		return u.Details.FirstName
	}
	return u.Details.FirstName + " " + u.Details.LastName
}

// ProfileUpdate carries a partial profile edit. Nil fields are left
// untouched; the role and employee id are not editable here.
type ProfileUpdate struct {
	Email       *string `json:"email"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Department  *string `json:"department"`
}

// UserRef is the compact user shape returned by the by-role listing,
// used to populate assignment pickers.
type UserRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
