package app

import "crypto/subtle"

// AdminSession is a flag unlocked by a static shared credential.
// There is no expiry, token or lockout.
type AdminSession struct {
	credential string
	isAdmin    bool
}

func NewAdminSession(credential string) *AdminSession {
	return &AdminSession{credential: credential}
}

// Login sets the admin flag when password matches the credential.
// A failed attempt leaves the flag untouched.
func (a *AdminSession) Login(password string) bool {
	if subtle.ConstantTimeCompare([]byte(password), []byte(a.credential)) != 1 {
		return false
	}
	a.isAdmin = true
	return true
}

func (a *AdminSession) Logout() {
	a.isAdmin = false
}

func (a *AdminSession) IsAdmin() bool {
	return a.isAdmin
}
