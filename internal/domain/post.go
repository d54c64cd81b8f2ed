package domain

import "time"

type Post struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`       // Slug-style URL the post is addressed by
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Tags      []string  `json:"tags,omitempty"`
	ImageURLs []string  `json:"imageUrls"`
	CreatedAt time.Time `json:"createdAt"`

	// RelativeAge is computed once when the post is fetched and never sent back.
	RelativeAge string `json:"relativeAge,omitempty"`
}

// Clone returns a copy that shares no slices with p.
func (p Post) Clone() Post {
	c := p
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	if p.ImageURLs != nil {
		c.ImageURLs = append([]string(nil), p.ImageURLs...)
	}
	return c
}

// ClonePosts copies a post sequence preserving order.
func ClonePosts(posts []Post) []Post {
	if posts == nil {
		return nil
	}
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}
