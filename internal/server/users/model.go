package users

// User is a single directory entry. PasswordHash holds the sha-256 hex
// digest of the password; the plaintext is never stored. The JSON tag is
// "password" for compatibility with existing user collection files.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
	Role         string `json:"role"`
}

// Collection is the persisted shape of the user directory.
type Collection struct {
	Users []User `json:"users"`
}
