package blog

import "errors"

var ErrPostNotFound = errors.New("blog post not found")

// Post is a static marketing blog entry. The catalog ships with the binary;
// there is no remote content store behind it.
type Post struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	Image           string `json:"image"`
	ImageAlt        string `json:"alt"`
	Author          string `json:"author"`
	Date            string `json:"date"`
	Category        string `json:"category"`
	ReadTime        string `json:"read"`
}

// List returns all posts, newest first. The first entry doubles as the
// landing-page banner.
func List() []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	return out
}

func FindByID(id string) (*Post, error) {
	for i := range posts {
		if posts[i].ID == id {
			p := posts[i]
			return &p, nil
		}
	}
	return nil, ErrPostNotFound
}
