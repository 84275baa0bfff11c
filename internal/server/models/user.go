package models

// Role names stored in users.role and carried in identity tokens.
const (
	RoleLibrarian = "librarian"
	RoleUser      = "user"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
}

// Identity is what an identity token asserts about its bearer.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (u User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}
