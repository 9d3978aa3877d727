package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DecodeDocument decodes a single YAML or JSON document into plain Go values.
// Integers stay int and mappings become map[string]any. Empty input yields nil.
func DecodeDocument(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}

// DecodeDocuments decodes a YAML stream. A single top-level sequence is
// expanded into its elements, so both "---"-separated documents and a JSON
// array are accepted.
func DecodeDocuments(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []any
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, doc)
	}

	if len(docs) == 1 {
		if list, ok := docs[0].([]any); ok {
			return list, nil
		}
	}
	return docs, nil
}

// ReadDocument reads the raw document at path, or stdin when path is "-".
func ReadDocument(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}
