// Package catalog provides a client for the Google Books volumes API.
package catalog

// VolumeList is the Google Books search payload. Field names mirror the
// upstream response so results pass through to the client unmodified.
type VolumeList struct {
	Kind       string   `json:"kind"`
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// Volume is a single catalog result.
type Volume struct {
	Kind       string     `json:"kind"`
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title         string     `json:"title"`
	Authors       []string   `json:"authors,omitempty"`
	Publisher     string     `json:"publisher,omitempty"`
	PublishedDate string     `json:"publishedDate,omitempty"`
	Description   string     `json:"description,omitempty"`
	PageCount     int        `json:"pageCount,omitempty"`
	Categories    []string   `json:"categories,omitempty"`
	ImageLinks    ImageLinks `json:"imageLinks,omitempty"`
	Language      string     `json:"language,omitempty"`
	PreviewLink   string     `json:"previewLink,omitempty"`
	InfoLink      string     `json:"infoLink,omitempty"`
}

type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
}
