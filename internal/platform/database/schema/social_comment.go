package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table         string
	ID            string
	AuthorID      string
	MangaID       string
	PageID        string
	ParentID      string
	Content       string
	IsPageComment string
	IsParent      string
	CreatedAt     string
	UpdatedAt     string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:         "social.comment",
	ID:            "id",
	AuthorID:      "authorid",
	MangaID:       "mangaid",
	PageID:        "pageid",
	ParentID:      "parentid",
	Content:       "content",
	IsPageComment: "ispagecomment",
	IsParent:      "isparent",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t SocialCommentTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.MangaID, t.PageID, t.ParentID, t.Content,
		t.IsPageComment, t.IsParent, t.CreatedAt, t.UpdatedAt,
	}
}
