package types

// User is the demo record served by the users listing.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
