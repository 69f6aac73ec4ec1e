package model

// Artifact is a data file stored in object storage ahead of dataset registration.
// Its Key is what a dataset carries as DataURI.
type Artifact struct {
	Key         string `json:"key"`
	ContentHash Hash   `json:"content_hash"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}
