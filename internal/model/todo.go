package model

// Todo is a simple remote to-do entry. Like assignments, the record is
// owned by the API; the client only ever holds the last server
// snapshot of the collection.
type Todo struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}
