package session

type User struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Token           string `json:"token"`
	TokenExpiration int64  `json:"tokenExpiration"` // epoch milliseconds, 0 when the token carries no exp claim
}

// State is a snapshot of the store. Only User and Authenticated are persisted.
type State struct {
	User          *User  `json:"user"`
	Authenticated bool   `json:"isAuthenticated"`
	Loading       bool   `json:"isLoading"`
	Error         string `json:"error,omitempty"`
}

type persistedState struct {
	User          *User `json:"user"`
	Authenticated bool  `json:"isAuthenticated"`
}

type persistedEnvelope struct {
	State   persistedState `json:"state"`
	Version int            `json:"version"`
}
