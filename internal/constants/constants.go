package constants

import "time"

// Session / context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)

// Auth
const (
	MinPasswordLength = 8
	TokenLifetime     = 7 * 24 * time.Hour
	OTPLifetime       = 15 * time.Minute
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Analytics
const (
	// HeatmapWindow is the trailing window for the day-of-week completion heatmap.
	HeatmapWindow = 90 * 24 * time.Hour
)

// Quality score bounds
const (
	MinQualityScore = 1
	MaxQualityScore = 5
)

// Auto-archive
const (
	// ArchiveAfter is how long a completed task stays visible before the
	// daily sweep archives it (when the autoArchive setting is on).
	ArchiveAfter = 30 * 24 * time.Hour
)
