package models

import (
	"time"

	"github.com/google/uuid"
)

// ScanSummary contains the outcome of one scan run across all users
type ScanSummary struct {
	// Summary
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	HomeRoot  string        `json:"home_root"`
	StoreRoot string        `json:"store_root"`
	Version   string        `json:"version"`

	// Totals
	TotalUsers   int   `json:"total_users"`
	ScannedUsers int   `json:"scanned_users"`
	MissingRoots int   `json:"missing_roots"`
	Processed    int64 `json:"processed"`
	Skipped      int64 `json:"skipped"`
	Stored       int   `json:"stored"`

	// Per user
	Users []*UserScan `json:"users"`

	// Performance
	WorkersUsed int    `json:"workers_used"`
	MemoryUsed  uint64 `json:"memory_used_bytes"`

	// Report path
	ReportPath string `json:"report_path,omitempty"`
}

// UserScan describes what one per-user task did
type UserScan struct {
	User        string        `json:"user"`
	Root        string        `json:"root"`
	Missing     bool          `json:"missing,omitempty"` // content root did not exist
	Changeset   uuid.UUID     `json:"changeset"`
	Parent      uuid.UUID     `json:"parent"`
	Domains     int           `json:"domains"`
	Processed   int64         `json:"processed"`
	Skipped     int64         `json:"skipped"`
	StoredPath  string        `json:"stored_path,omitempty"`
	StoredBytes int           `json:"stored_bytes"`
	Errors      []string      `json:"errors,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// AddUser records a finished user task and updates the totals
func (r *ScanSummary) AddUser(u *UserScan) {
	r.Users = append(r.Users, u)
	if u.Missing {
		r.MissingRoots++
		return
	}
	r.ScannedUsers++
	if u.StoredBytes > 0 {
		r.Stored++
	}
}
