package schema

// SocialRatingTable represents the 'social.rating' table
type SocialRatingTable struct {
	Table     string
	ID        string
	UserID    string
	MangaID   string
	Star      string
	CreatedAt string
	UpdatedAt string
}

// SocialRating is the schema definition for social.rating
var SocialRating = SocialRatingTable{
	Table:     "social.rating",
	ID:        "id",
	UserID:    "userid",
	MangaID:   "mangaid",
	Star:      "star",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
