package domain

// Identity is the authenticated caller of a service operation, resolved per
// request from the session token. A nil *Identity means anonymous; service
// operations receive it explicitly instead of reading ambient session state.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  Role
}
