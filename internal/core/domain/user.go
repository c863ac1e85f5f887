package domain

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	CRP   string `json:"crp,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

// AuthState is a snapshot of the session as seen by the view layer.
type AuthState struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"isLoading"`
	Error           string `json:"error,omitempty"`
}
