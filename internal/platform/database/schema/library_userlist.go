package schema

// LibraryUserListTable represents the 'library.userlist' table
type LibraryUserListTable struct {
	Table     string
	ID        string
	UserID    string
	MangaID   string
	ListType  string
	Comment   string
	CreatedAt string
}

// LibraryUserList is the schema definition for library.userlist
var LibraryUserList = LibraryUserListTable{
	Table:     "library.userlist",
	ID:        "id",
	UserID:    "userid",
	MangaID:   "mangaid",
	ListType:  "listtype",
	Comment:   "comment",
	CreatedAt: "createdat",
}
