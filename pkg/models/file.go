package models

import (
	"time"
)

// AccountType describes the kind of hosting account that owns a file
type AccountType string

const (
	AccountRegular  AccountType = "regular"
	AccountReseller AccountType = "reseller"
	AccountManaged  AccountType = "managed"
	AccountAdmin    AccountType = "admin"
)

// Owner describes the OS account that owns a scanned file
type Owner struct {
	Name        string      `json:"name"`
	AccountType AccountType `json:"account_type"`
	Origin      string      `json:"origin"` // host the account lives on
	UID         uint32      `json:"uid"`
	GID         uint32      `json:"gid"`
}

// FileEntry is the classification result of one file. It is a metadata
// snapshot and is never updated after the fingerprinter builds it.
type FileEntry struct {
	Path     string `json:"path"`
	SHA1     string `json:"sha1"`     // digest of the sanitized sample
	Lang     string `json:"lang"`     // ISO 639 code
	Encoding string `json:"encoding"` // label of the detected byte encoding
	Owner    Owner  `json:"owner"`
	Size     int64  `json:"size"`
	Mode     uint32 `json:"mode"`
	Modified int64  `json:"modified"` // seconds elapsed since mtime at scan time
	Content  Text   `json:"content"`  // retained printable part of the read budget
}

// FileInfo contains basic file information without content
type FileInfo struct {
	Path      string
	Size      int64
	ModTime   time.Time
	IsDir     bool
	IsSymlink bool
	IsHidden  bool
}
