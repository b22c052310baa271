package domain

// Role is the integer classification of a user used for authorization.
type Role int

const (
	RoleAdmin     Role = 0
	RoleUser      Role = 1
	RoleDeveloper Role = 2
)

// String returns the canonical name of the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	case RoleUser:
		return "USER"
	case RoleDeveloper:
		return "DEVELOPER"
	}
	return "UNKNOWN"
}

// ValidRole reports whether r is a defined role value.
func ValidRole(r Role) bool {
	return r >= RoleAdmin && r <= RoleDeveloper
}

// User models a registered account. PasswordHash holds the bcrypt digest and
// is never serialized back to callers.
type User struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	FirstName    string `json:"firstName" bson:"firstName"`
	LastName     string `json:"lastName" bson:"lastName"`
	Username     string `json:"username" bson:"username"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"password"`
	Role         Role   `json:"role" bson:"role"`
}
