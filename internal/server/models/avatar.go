package models

// Avatar is a catalog entry. ImageURL may hold an s3://bucket/key reference
// that is presigned before it leaves the server.
type Avatar struct {
	ID       int    `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Active   bool   `json:"active"`
}
