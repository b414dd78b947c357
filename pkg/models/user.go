package models

// User owns a movie collection. Users are created through the registration
// form and are never updated or deleted in the current scope.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
