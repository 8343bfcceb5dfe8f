package domain

// Actor identifies the acting user on every operation. Authentication itself
// happens upstream; handlers build the Actor from verified token claims.
type Actor struct {
	UserID  string `json:"userID"`
	StoreID string `json:"storeID"`
	IsAdmin bool   `json:"isAdmin"`
}

// CanAccessStore reports whether the actor may operate on storeID's data.
// Administrative actors may operate on any store.
func (a Actor) CanAccessStore(storeID string) bool {
	return a.IsAdmin || a.StoreID == storeID
}
