package route

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// documentEntry is the JSON shape shared by the remote store and the local
// snapshot.
type documentEntry struct {
	Queue     string `json:"queue"`
	URL       string `json:"url"`
	Audience  string `json:"aud,omitempty"`
	DeadlineS int    `json:"deadline_s"`
}

// ParseDocument decodes a routing document. A single invalid entry rejects
// the whole document.
func ParseDocument(data []byte) (Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var raw map[string]documentEntry
	if err := dec.Decode(&raw); err != nil {
		return Table{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if raw == nil {
		return Table{}, fmt.Errorf("%w: document must be a JSON object", ErrInvalidDocument)
	}

	entries := make(map[string]Entry, len(raw))

	for name, de := range raw {
		e, err := NewEntry(de.Queue, de.URL, de.Audience, de.DeadlineS)
		if err != nil {
			return Table{}, fmt.Errorf("%w: service %q: %w", ErrInvalidDocument, name, err)
		}

		entries[name] = e
	}

	t, err := NewTable(entries)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return t, nil
}

// MarshalDocument encodes t in the document format understood by ParseDocument.
func MarshalDocument(t Table) ([]byte, error) {
	raw := make(map[string]documentEntry, t.Len())
	for name, e := range t.entries {
		raw[name] = documentEntry{
			Queue:     e.queueID,
			URL:       e.targetURL,
			Audience:  e.audience,
			DeadlineS: e.deadlineSeconds,
		}
	}

	return json.MarshalIndent(raw, "", "  ")
}
