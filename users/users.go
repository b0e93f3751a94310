package users

// User is the local record created the first time a provider subject logs
// in. Once created it is treated as authoritative; fields are not re-synced
// from the provider on later logins.
type User struct {
	ID        int64
	Subject   string // Stable unique identifier assigned by the identity provider
	Email     string
	FirstName string
	LastName  string
}

// Context identifies the authenticated user to the rest of the process.
type Context struct {
	UserID int64
	Email  string
	Name   string
}

func (u *User) Context() Context {
	return Context{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.FirstName,
	}
}
