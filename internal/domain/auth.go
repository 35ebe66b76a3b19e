package domain

// PasswordChange is a self-service password update.
type PasswordChange struct {
	Current string
	New     string
}

// ServiceScope names what an internal caller is allowed to do.
type ServiceScope string

const (
	ScopeAccountsRead  ServiceScope = "accounts:read"
	ScopeAccountsWrite ServiceScope = "accounts:write"
)
