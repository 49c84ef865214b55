package domain

// Principal is the caller identity derived from a verified token.
// It lives for a single request and is never persisted.
type Principal struct {
	Email  string
	Role   UserRole
	Claims map[string]any
}
