package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// RootUUID marks the top of a changeset lineage
	RootUUID = uuid.MustParse("4b84d962-ff55-4913-94fa-b20db7e1d2da")

	// InvalidUUID is only ever set on changesets substituted for undecodable records
	InvalidUUID = uuid.MustParse("deadbeef-ff55-4913-94fa-000000000000")
)

// ProbeResult holds the outcome of one GET against a live site
type ProbeResult struct {
	Content      string `json:"content"`       // markup-stripped body
	Encoding     string `json:"encoding"`      // charset label of the response
	Size         int    `json:"size"`          // length of Content
	Status       int    `json:"status"`        // HTTP status or failure sentinel
	ResponseTime int64  `json:"response_time"` // milliseconds
}

// DomainEntry is one domain file's fingerprint plus its live probe results
type DomainEntry struct {
	Name        string      `json:"name"`
	RequestPath string      `json:"request_path"`
	File        FileEntry   `json:"file"`
	HTTP        ProbeResult `json:"http"`
	HTTPS       ProbeResult `json:"https"`
}

// Changeset is one point-in-time snapshot of a user's domain content
type Changeset struct {
	UUID      uuid.UUID     `json:"uuid"`
	Parent    uuid.UUID     `json:"parent"`
	Timestamp int64         `json:"timestamp"` // unix milliseconds
	Entries   []DomainEntry `json:"entries"`
}

// NewChangeset creates an empty changeset with a fresh random uuid
func NewChangeset(parent uuid.UUID) *Changeset {
	return &Changeset{
		UUID:      uuid.New(),
		Parent:    parent,
		Timestamp: time.Now().UnixMilli(),
		Entries:   []DomainEntry{},
	}
}

// InvalidChangeset returns the sentinel used in place of an unreadable record
func InvalidChangeset() *Changeset {
	return &Changeset{
		UUID:    InvalidUUID,
		Parent:  InvalidUUID,
		Entries: []DomainEntry{},
	}
}

// IsValid reports whether the changeset came from a successful decode or scan
func (c *Changeset) IsValid() bool {
	return c != nil && c.UUID != InvalidUUID && c.Parent != InvalidUUID
}

// Add appends a domain entry
func (c *Changeset) Add(entry DomainEntry) {
	c.Entries = append(c.Entries, entry)
}

// Time returns the changeset timestamp as a time.Time
func (c *Changeset) Time() time.Time {
	return time.UnixMilli(c.Timestamp)
}

// FileName returns the store base name "{uuid}-{timestamp}"
func (c *Changeset) FileName() string {
	return fmt.Sprintf("%s-%d", c.UUID, c.Timestamp)
}

// String gives a short one-line description
func (c *Changeset) String() string {
	return fmt.Sprintf("changeset %s (parent %s, %s, %d entries)",
		c.UUID, c.Parent, c.Time().UTC().Format(time.RFC3339), len(c.Entries))
}

// ChangesetSummary is a changeset without its entries, used for listings
type ChangesetSummary struct {
	UUID      uuid.UUID `json:"uuid"`
	Parent    uuid.UUID `json:"parent"`
	Timestamp int64     `json:"timestamp"`
	Entries   int       `json:"entries"`
	Domains   []string  `json:"domains"`
	Valid     bool      `json:"valid"`
}

// Summary builds the listing form of the changeset
func (c *Changeset) Summary() ChangesetSummary {
	seen := make(map[string]bool)
	domains := []string{}
	for _, e := range c.Entries {
		if !seen[e.Name] {
			seen[e.Name] = true
			domains = append(domains, e.Name)
		}
	}
	return ChangesetSummary{
		UUID:      c.UUID,
		Parent:    c.Parent,
		Timestamp: c.Timestamp,
		Entries:   len(c.Entries),
		Domains:   domains,
		Valid:     c.IsValid(),
	}
}
