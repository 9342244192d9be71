package domain

// Role is a named profile referenced by users. Names are unique at the store level.
type Role struct {
	ID   int64
	Name string
}
