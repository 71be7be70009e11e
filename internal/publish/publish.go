// Package publish re-serializes stored judgment records into the JSON
// snapshot consumed by the static viewer. It reads records strictly read-only
// and attaches provenance to the published copies, never to the originals.
package publish

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/davidahmann/steward/internal/crypto"
	"github.com/davidahmann/steward/internal/ledger"
)

type Options struct {
	InDir  string
	OutDir string
	Clean  bool
}

type IndexEntry struct {
	Path            string  `json:"path"`
	RecordID        string  `json:"record_id"`
	Timestamp       string  `json:"timestamp"`
	MandateID       string  `json:"mandate_id"`
	ProcedureID     string  `json:"procedure_id"`
	OutcomeType     string  `json:"outcome_type"`
	ConfidenceLevel float64 `json:"confidence_level"`
	Fingerprint     string  `json:"fingerprint"`
	Emissions       int     `json:"emissions"`
}

type Index struct {
	GeneratedAt string       `json:"generated_at"`
	Records     []IndexEntry `json:"records"`
}

// fingerprintSections are the judgment-bearing parts of a record. Identity,
// timing, and audit metadata vary per emission of an otherwise identical
// judgment and are excluded so repeats deduplicate.
var fingerprintSections = []string{
	"authority",
	"state",
	"outcome",
	"confidence",
	"constraints",
	"compliance",
}

// Fingerprint derives the content key used to deduplicate repeated identical
// judgments across emissions.
func Fingerprint(record map[string]any) (string, error) {
	subset := map[string]any{}
	for _, key := range fingerprintSections {
		subset[key] = record[key]
	}
	canonical, err := crypto.Canonicalize(subset)
	if err != nil {
		return "", err
	}
	return crypto.DigestWithPrefix(canonical), nil
}

// Publish validates every stored record, writes per-record JSON copies with
// provenance, and builds index.json with one entry per distinct fingerprint.
func Publish(opts Options) (Index, error) {
	paths, err := filepath.Glob(filepath.Join(opts.InDir, "*.yaml"))
	if err != nil {
		return Index{}, err
	}
	sort.Strings(paths)

	publishedAt := time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)

	recordsDir := filepath.Join(opts.OutDir, "records")
	if opts.Clean {
		if err := os.RemoveAll(recordsDir); err != nil {
			return Index{}, err
		}
	}
	if err := os.MkdirAll(recordsDir, 0o750); err != nil {
		return Index{}, err
	}

	grouped := map[string]IndexEntry{}
	for _, path := range paths {
		record, err := loadRecordDocument(path)
		if err != nil {
			return Index{}, err
		}

		fingerprint, err := Fingerprint(record)
		if err != nil {
			return Index{}, fmt.Errorf("fingerprint %s: %w", path, err)
		}

		jsonPath := filepath.Join(recordsDir, stem(path)+".json")
		payload := map[string]any{}
		for k, v := range record {
			payload[k] = v
		}
		payload["_published_from"] = filepath.Base(path)
		payload["_published_at"] = publishedAt
		payload["_fingerprint"] = fingerprint

		encoded, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return Index{}, err
		}
		if err := os.WriteFile(jsonPath, encoded, 0o600); err != nil {
			return Index{}, err
		}

		entry, err := indexEntry(record, jsonPath, opts.OutDir, fingerprint)
		if err != nil {
			return Index{}, err
		}
		if existing, ok := grouped[fingerprint]; ok {
			// Keep the newest emission as the representative record.
			count := existing.Emissions + 1
			if existing.Timestamp >= entry.Timestamp {
				entry = existing
			}
			entry.Emissions = count
		} else {
			entry.Emissions = 1
		}
		grouped[fingerprint] = entry
	}

	entries := make([]IndexEntry, 0, len(grouped))
	for _, entry := range grouped {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Timestamp != entries[j].Timestamp {
			return entries[i].Timestamp > entries[j].Timestamp
		}
		return entries[i].RecordID < entries[j].RecordID
	})

	index := Index{GeneratedAt: publishedAt, Records: entries}

	encoded, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return Index{}, err
	}
	if err := os.WriteFile(filepath.Join(opts.OutDir, "index.json"), encoded, 0o600); err != nil {
		return Index{}, err
	}
	return index, nil
}

func loadRecordDocument(path string) (map[string]any, error) {
	// #nosec G304 -- path comes from the operator-provided records directory.
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("record %s: %w", path, err)
	}
	record, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("record %s is not a mapping", path)
	}
	if err := ledger.ValidateDocument(record); err != nil {
		return nil, fmt.Errorf("record %s: %w", path, err)
	}
	return record, nil
}

func indexEntry(record map[string]any, jsonPath, outDir, fingerprint string) (IndexEntry, error) {
	rel, err := filepath.Rel(filepath.Dir(outDir), jsonPath)
	if err != nil {
		return IndexEntry{}, err
	}

	entry := IndexEntry{
		Path:        filepath.ToSlash(rel),
		Fingerprint: fingerprint,
	}
	entry.RecordID, _ = record["record_id"].(string)
	entry.Timestamp, _ = record["timestamp"].(string)

	if authority, ok := record["authority"].(map[string]any); ok {
		entry.MandateID, _ = authority["mandate_id"].(string)
		entry.ProcedureID, _ = authority["procedure_id"].(string)
	}
	if outcome, ok := record["outcome"].(map[string]any); ok {
		entry.OutcomeType, _ = outcome["type"].(string)
	}
	if confidence, ok := record["confidence"].(map[string]any); ok {
		switch level := confidence["level"].(type) {
		case float64:
			entry.ConfidenceLevel = level
		case int:
			entry.ConfidenceLevel = float64(level)
		}
	}
	return entry, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
