package model

import "time"

// Dataset describes one uploaded research data artifact.
// This is a pure domain model with no database-specific dependencies or tags.
// ID, Contributor, ContentHash and UploadTimestamp are fixed once the record exists.
type Dataset struct {
	ID              string     `json:"id"`
	Registry        string     `json:"registry"`
	Contributor     string     `json:"contributor"`
	ContentHash     Hash       `json:"content_hash"`
	AIMetadata      []byte     `json:"ai_metadata"`
	FileName        string     `json:"file_name"`
	FileSize        uint64     `json:"file_size"`
	DataURI         string     `json:"data_uri,omitempty"`
	ColumnCount     uint64     `json:"column_count"`
	RowCount        uint64     `json:"row_count"`
	QualityScore    uint8      `json:"quality_score"`
	UploadTimestamp time.Time  `json:"upload_timestamp"`
	LastUpdated     *time.Time `json:"last_updated"`
	DownloadCount   uint32     `json:"download_count"`
	IsActive        bool       `json:"is_active"`
}
