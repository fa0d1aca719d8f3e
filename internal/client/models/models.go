// Package models defines the data types exchanged with the remote demo APIs
// and kept in the local overlay database.
package models

// Role is the dashboard-level role attached to an identity.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleModerator:
		return true
	}
	return false
}

// DefaultRoleFor derives the simulated role the user directory does not
// provide: a stable function of the user id.
func DefaultRoleFor(id int64) Role {
	roles := []Role{RoleAdmin, RoleUser, RoleModerator}
	return roles[id%3]
}

// User is an identity record from the user-directory API, optionally
// decorated with a role by the merge layer.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
	Role      Role   `json:"role,omitempty"`
}

// UsersPage is one page of the directory listing.
type UsersPage struct {
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	Data       []User `json:"data"`
}

// Post is a board entry. Local-origin posts carry ids generated client-side;
// remote-origin posts use the board API's ids.
type Post struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int64  `json:"userId"`
}

// Comment belongs to a post on the board API.
type Comment struct {
	ID     int64  `json:"id"`
	PostID int64  `json:"postId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// Book is a search hit from the library API.
type Book struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name,omitempty"`
	FirstPublishYear int      `json:"first_publish_year,omitempty"`
	CoverID          int64    `json:"cover_i,omitempty"`
}

// BookPage is one page of library search results.
type BookPage struct {
	NumFound int    `json:"numFound"`
	Docs     []Book `json:"docs"`
}

// BookDetails is a work record with its author names resolved. Authors whose
// lookup failed degrade to a placeholder instead of failing the whole view.
type BookDetails struct {
	Key         string
	Title       string
	Description string
	Authors     []string
}
