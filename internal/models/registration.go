package models

// Registration records a visitor asking for a calendar invite.
type Registration struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Industry string `db:"industry" json:"industry"`
}
