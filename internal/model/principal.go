package model

// Principal is the authenticated operator extracted from the access token.
type Principal struct {
	UserID string
	Name   string
}
