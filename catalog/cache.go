package catalog

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
)

// SerializeSnapshot encodes a Snapshot to bytes using gob encoding. Useful
// for disk-based caching to avoid re-parsing snapshot archives on restart.
func SerializeSnapshot(snap *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DeserializeSnapshot decodes a Snapshot previously written by
// SerializeSnapshot.
func DeserializeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.JourneyRows == nil {
		snap.JourneyRows = map[int64][]Waypoint{}
	}
	if snap.CoachRows == nil {
		snap.CoachRows = map[int64][]Coach{}
	}
	if snap.CoachTypeRows == nil {
		snap.CoachTypeRows = map[int64]CoachType{}
	}
	if snap.TicketRows == nil {
		snap.TicketRows = map[int64][]Ticket{}
	}
	return &snap, nil
}

// SerializeSnapshotToFile writes a Snapshot to a file using gob encoding.
func SerializeSnapshotToFile(snap *Snapshot, path string) error {
	data, err := SerializeSnapshot(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DeserializeSnapshotFromFile reads a Snapshot from a gob cache file.
func DeserializeSnapshotFromFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return DeserializeSnapshot(data)
}
