// Package api holds the wire contract shared by the service handlers and
// client code: request/response shapes and the error envelope.
package api

// SignUpRequest creates a new account.
type SignUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest presents a credential pair.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileResponse is the created/authenticated profile. It never carries the
// password hash.
type ProfileResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TokenResponse carries a freshly minted session token.
type TokenResponse struct {
	AuthToken string `json:"authToken"`
}

// MealItemResponse is one planned meal slot.
type MealItemResponse struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	Name      string `json:"name"`
	Notes     string `json:"notes,omitempty"`
	UpdatedAt string `json:"updatedAt"`
}

// UpdateMealRequest replaces the contents of a meal slot.
type UpdateMealRequest struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

// GroceryItemResponse is one grocery list entry.
type GroceryItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// AddGroceryRequest appends an entry to the grocery list.
type AddGroceryRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// HealthResponse is returned by the livez/readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
