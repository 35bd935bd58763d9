package types

// User roles. Teachers borrow equipment; administrators additionally manage
// the catalog and the maintenance log.
const (
	RoleTeacher       = "teacher"
	RoleAdministrator = "administrator"
)

// User represents an account in the system. Accounts are keyed by email and
// are immutable after registration; no edit or delete operation exists.
type User struct {
	// Email is the unique login identifier, stored lowercase.
	Email string `json:"email" db:"email"`

	// Name is the user's full name.
	Name string `json:"name" db:"name"`

	// Role indicates the user's authorization level,
	// either "teacher" or "administrator".
	Role string `json:"role" db:"role"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp at which the account was registered.
	CreatedAt DateTime `json:"created_at" db:"created_at"`
}
