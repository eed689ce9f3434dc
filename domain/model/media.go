package model

// MediaKind selects how the object store treats an asset.
type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindImage MediaKind = "image"
)

// MediaAsset is a stored binary. PublicID is the provider key used for deletion.
type MediaAsset struct {
	URL          string    `json:"url"`
	PublicID     string    `json:"publicId"`
	ResourceType MediaKind `json:"resourceType"`
	Duration     float64   `json:"duration,omitempty"`
	Size         int64     `json:"size"`
}
