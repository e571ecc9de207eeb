package domain

// Session is a bearer credential issued on successful login. Expiry is an
// absolute unix timestamp; sessions are never extended, only deleted.
type Session struct {
	ID       int64
	Username string
	Token    string
	Expiry   int64
}
