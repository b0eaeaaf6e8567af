// Package models holds the plain record shapes persisted by the data-access
// layer. The structs carry no storage tags: the document mapping is written
// out explicitly in the repository implementations so the stored shape is a
// reviewable contract.
package models

// User is a registered account. Email is the unique identifier; Password is
// an opaque hashed credential produced by the caller.
type User struct {
	Email       string
	Name        string
	Password    string
	Preferences map[string]any
}
