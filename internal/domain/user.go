package domain

import "time"

// Role of a signed-in user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the account record returned by the backend, or created locally
// when the backend cannot be reached
//
// swagger:model
type User struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Role       Role           `json:"role"`
	Avatar     string         `json:"avatar,omitempty"`
	JoinedDate time.Time      `json:"joinedDate"`
	Orders     []OrderSummary `json:"orders"`
}

// IsAdmin reports whether the user may open the admin views
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// TotalSpent sums the totals of every order in the user's history
func (u *User) TotalSpent() float64 {
	var sum float64
	for _, o := range u.Orders {
		sum += o.Total
	}
	return sum
}
