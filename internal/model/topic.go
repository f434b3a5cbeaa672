package model

// Topic is identified by its slug, e.g. "cats".
type Topic struct {
	Slug        string `json:"slug"        db:"slug"`
	Description string `json:"description" db:"description"`
}
