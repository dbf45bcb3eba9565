package storage

import (
	"errors"
	"time"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateExists   = errors.New("template already exists")
)

// TemplateKey identifies one version of a funding stream's template for a period.
type TemplateKey struct {
	FundingStreamID string `json:"fundingStreamId"`
	FundingPeriodID string `json:"fundingPeriodId"`
	TemplateVersion string `json:"templateVersion"`
}

// Template is a stored raw template document.
type Template struct {
	ID int64 `json:"id"`
	TemplateKey
	SchemaVersion string    `json:"schemaVersion"`
	Content       string    `json:"content,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
