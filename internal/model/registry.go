package model

import "time"

// Registry counts the datasets registered under one administrator.
// Owner never changes; TotalDatasets only grows.
type Registry struct {
	Owner         string    `json:"owner"`
	TotalDatasets uint64    `json:"total_datasets"`
	CreatedAt     time.Time `json:"created_at"`
}
