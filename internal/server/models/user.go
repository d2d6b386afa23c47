// Package models defines the server-side data persisted by the stores.
package models

// Token is one issued session credential held on a user record.
type Token struct {
	Access string `json:"access"`
	Token  string `json:"token"`
}

// User is a registered account. Password holds the bcrypt hash and is
// never serialized; Tokens lists every session token currently valid for
// the user.
type User struct {
	ID       string  `json:"_id"`
	Email    string  `json:"email"`
	Password string  `json:"-"`
	Tokens   []Token `json:"-"`
}

// HasToken reports whether token is one of the user's live tokens for access.
func (u *User) HasToken(access, token string) bool {
	for _, t := range u.Tokens {
		if t.Access == access && t.Token == token {
			return true
		}
	}
	return false
}
