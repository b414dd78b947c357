package models

// Defaults applied when the metadata lookup omits a field.
const (
	UnknownDirector = "Unknown Director"
	UnknownYear     = 0
	UnknownRating   = 0.0
)

// Movie is a single entry in a user's collection. A movie belongs to exactly
// one user for its lifetime.
type Movie struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Director string  `json:"director"`
	Year     int     `json:"year"`
	Rating   float64 `json:"rating"`
	Poster   string  `json:"poster"`
	UserID   int64   `json:"user_id"`
}

// MovieUpdate is a partial update: nil fields are left untouched by the
// repository, non-nil fields overwrite the stored values.
type MovieUpdate struct {
	Name     *string
	Director *string
	Year     *int
	Rating   *float64
}

// IsEmpty reports whether the update would change nothing.
func (u MovieUpdate) IsEmpty() bool {
	return u.Name == nil && u.Director == nil && u.Year == nil && u.Rating == nil
}
