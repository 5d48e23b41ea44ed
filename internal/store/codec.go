package store

import (
	"compress/zlib"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"io"

	"github.com/IvanShishkin/webtrail/pkg/models"
)

// Codec serializes changesets for one file extension
type Codec interface {
	Extension() string
	Encode(w io.Writer, cs *models.Changeset) error
	Decode(r io.Reader) (*models.Changeset, error)
}

// BinaryCodec stores a gob stream compressed with zlib at best compression
type BinaryCodec struct{}

// Extension returns the file extension without dot
func (BinaryCodec) Extension() string { return "chgset" }

// Encode writes the compressed changeset
func (BinaryCodec) Encode(w io.Writer, cs *models.Changeset) error {
	zw, err := zlib.NewWriterLevel(w, zlib.BestCompression)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(zw).Encode(cs); err != nil {
		zw.Close()
		return fmt.Errorf("failed to encode changeset: %w", err)
	}
	return zw.Close()
}

// Decode reads a compressed changeset
func (BinaryCodec) Decode(r io.Reader) (*models.Changeset, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed stream: %w", err)
	}
	defer zr.Close()

	var cs models.Changeset
	if err := gob.NewDecoder(zr).Decode(&cs); err != nil {
		return nil, fmt.Errorf("failed to decode changeset: %w", err)
	}
	if cs.Entries == nil {
		cs.Entries = []models.DomainEntry{}
	}
	return &cs, nil
}

// JSONCodec stores indented JSON, readable by other tools
type JSONCodec struct{}

// Extension returns the file extension without dot
func (JSONCodec) Extension() string { return "chgset.json" }

// Encode writes the changeset as JSON
func (JSONCodec) Encode(w io.Writer, cs *models.Changeset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cs); err != nil {
		return fmt.Errorf("failed to marshal changeset: %w", err)
	}
	return nil
}

// Decode reads a JSON changeset
func (JSONCodec) Decode(r io.Reader) (*models.Changeset, error) {
	var cs models.Changeset
	if err := json.NewDecoder(r).Decode(&cs); err != nil {
		return nil, fmt.Errorf("failed to decode changeset: %w", err)
	}
	if cs.Entries == nil {
		cs.Entries = []models.DomainEntry{}
	}
	return &cs, nil
}
