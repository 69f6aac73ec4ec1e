package model

// Reputation aggregates a contributor's uploads and the quality scores they carried.
// It is addressed by Contributor; there is at most one per contributor.
type Reputation struct {
	Contributor       string `json:"contributor"`
	TotalUploads      uint32 `json:"total_uploads"`
	TotalQualityScore uint64 `json:"total_quality_score"`
	TotalDownloads    uint64 `json:"total_downloads"`
	TotalCitations    uint32 `json:"total_citations"`
	ReputationScore   uint32 `json:"reputation_score"`
	// DownloadTime is the unix time of the last recorded download, 0 if none.
	DownloadTime int64 `json:"download_time"`
}
