package domain

// Identity is the caller as asserted by the gateway. It is trusted as-is;
// credentials are verified upstream.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// Anonymous reports whether no user id was supplied.
func (i Identity) Anonymous() bool {
	return i.UserID == ""
}
