package database

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/scarlettos/scpkg/pkg/types"
)

// Document is the in-memory form of the package database: records keyed
// by package name, with the order packages were first installed preserved
// across save and load. That order is what listing output follows.
type Document struct {
	names   []string
	records map[string]types.PackageRecord
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{records: make(map[string]types.PackageRecord)}
}

// Len returns the number of installed packages.
func (d *Document) Len() int {
	return len(d.names)
}

// Get returns the record for name.
func (d *Document) Get(name string) (types.PackageRecord, bool) {
	record, ok := d.records[name]
	return record, ok
}

// Has reports whether a record exists for name.
func (d *Document) Has(name string) bool {
	_, ok := d.records[name]
	return ok
}

// Set stores record under its name. An existing record is overwritten in
// place, keeping its original position. The previous record is returned
// so callers can compare the file lists of the two installs.
func (d *Document) Set(record types.PackageRecord) (previous types.PackageRecord, replaced bool) {
	previous, replaced = d.records[record.Name]
	d.records[record.Name] = record
	if !replaced {
		d.names = append(d.names, record.Name)
	}
	return previous, replaced
}

// Delete removes the record for name, reporting whether it existed.
func (d *Document) Delete(name string) bool {
	if _, ok := d.records[name]; !ok {
		return false
	}
	delete(d.records, name)
	for i, n := range d.names {
		if n == name {
			d.names = append(d.names[:i], d.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns the package names in insertion order.
func (d *Document) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Records returns the records in insertion order.
func (d *Document) Records() []types.PackageRecord {
	out := make([]types.PackageRecord, 0, len(d.names))
	for _, name := range d.names {
		out = append(out, d.records[name])
	}
	return out
}

// MarshalJSON writes the document as one JSON object keyed by package
// name. Keys appear in insertion order, which encoding/json would not
// give us for a plain map.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range d.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		record := d.records[name]
		value, err := json.Marshal(&record)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the on-disk object, recording key order as it goes.
// Records whose value omits the name get it backfilled from the key.
func (d *Document) UnmarshalJSON(data []byte) error {
	d.names = nil
	d.records = make(map[string]types.PackageRecord)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("package database must be a JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v in package database", keyTok)
		}

		var record types.PackageRecord
		if err := dec.Decode(&record); err != nil {
			return fmt.Errorf("record for %q: %w", name, err)
		}
		if record.Name == "" {
			record.Name = name
		}

		if _, exists := d.records[name]; !exists {
			d.names = append(d.names, name)
		}
		d.records[name] = record
	}

	_, err = dec.Token()
	return err
}
