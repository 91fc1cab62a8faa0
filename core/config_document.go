package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/samber/oops"
)

type configField struct {
	key   string
	value json.RawMessage
}

// ConfigDocument is a top-level JSON object that keeps its keys in file order
// and its values as the original bytes.
type ConfigDocument struct {
	fields []configField
	index  map[string]int
}

// ParseConfigDocument parses data as a single JSON object. A repeated key
// keeps the position of its first occurrence and the value of its last.
func ParseConfigDocument(data []byte) (*ConfigDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, oops.Wrapf(err, "failed to read opening token")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, oops.Errorf("top-level value is not an object")
	}

	doc := &ConfigDocument{index: map[string]int{}}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, oops.Wrapf(err, "failed to read key")
		}
		key, ok := tok.(string)
		if !ok {
			return nil, oops.Errorf("unexpected token %v where a key was expected", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, oops.Wrapf(err, "failed to read value of %q", key)
		}
		doc.setRaw(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, oops.Wrapf(err, "failed to read closing token")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, oops.Errorf("unexpected data after top-level object")
	}

	return doc, nil
}

func (d *ConfigDocument) setRaw(key string, value json.RawMessage) {
	if i, ok := d.index[key]; ok {
		d.fields[i].value = value
		return
	}

	d.index[key] = len(d.fields)
	d.fields = append(d.fields, configField{key: key, value: value})
}

func (d *ConfigDocument) Has(key string) bool {
	_, ok := d.index[key]
	return ok
}

// Get returns the raw JSON of key's value.
func (d *ConfigDocument) Get(key string) (json.RawMessage, bool) {
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}

	return d.fields[i].value, true
}

// Set stores value under key. New keys go at the end.
func (d *ConfigDocument) Set(key string, value interface{}) error {
	raw, err := encodeJSON(value)
	if err != nil {
		return oops.Wrapf(err, "failed to encode value of %q", key)
	}

	d.setRaw(key, raw)
	return nil
}

// Delete removes key and reports whether it was present.
func (d *ConfigDocument) Delete(key string) bool {
	i, ok := d.index[key]
	if !ok {
		return false
	}

	d.fields = append(d.fields[:i], d.fields[i+1:]...)
	delete(d.index, key)
	for j := i; j < len(d.fields); j++ {
		d.index[d.fields[j].key] = j
	}

	return true
}

func (d *ConfigDocument) Keys() []string {
	keys := make([]string, len(d.fields))
	for i, f := range d.fields {
		keys[i] = f.key
	}

	return keys
}

// MarshalIndent renders the document with four-space indentation and no
// trailing newline. Characters outside ASCII and HTML-special characters are
// written as-is.
func (d *ConfigDocument) MarshalIndent() ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, f := range d.fields {
		if i > 0 {
			compact.WriteByte(',')
		}

		key, err := encodeJSON(f.key)
		if err != nil {
			return nil, err
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(f.value)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "    "); err != nil {
		return nil, oops.Wrapf(err, "failed to indent document")
	}

	return out.Bytes(), nil
}

func encodeJSON(value interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
