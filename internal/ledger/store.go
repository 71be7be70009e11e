// Package ledger persists judgment records and escalation stubs as uniquely
// named, write-once YAML artifacts.
package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/davidahmann/steward/pkg/types"
)

var ErrArtifactExists = errors.New("artifact already exists")

// WriteJudgmentRecord validates and writes a record under dir, creating the
// directory if absent. An existing target filename is a fatal error; stored
// records are never overwritten.
func WriteJudgmentRecord(record types.JudgmentRecord, dir string) (string, error) {
	if err := ValidateRecord(record); err != nil {
		return "", fmt.Errorf("invalid judgment record: %w", err)
	}

	path, err := artifactPath(dir, record.Timestamp, record.RecordID)
	if err != nil {
		return "", err
	}
	if err := writeOnce(path, record); err != nil {
		return "", err
	}
	return path, nil
}

// artifactPath builds the deterministic compact-timestamp + identifier
// filename used by both the record store and the escalation router.
func artifactPath(dir, timestamp, recordID string) (string, error) {
	parsed, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return "", fmt.Errorf("parse record timestamp: %w", err)
	}
	compact := parsed.UTC().Format("20060102T150405") + "Z"
	return filepath.Join(dir, fmt.Sprintf("%s_%s.yaml", compact, recordID)), nil
}

// writeOnce serializes payload to path with O_EXCL semantics so a colliding
// filename fails instead of being silently replaced.
func writeOnce(path string, payload any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(payload)
	if err != nil {
		return err
	}

	// #nosec G304 -- path is derived from operator-provided output directory.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrArtifactExists, path)
		}
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
