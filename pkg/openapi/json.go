package openapi

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
)

// MarshalJSON encodes spec with two-space indentation and no trailing newline.
func MarshalJSON(spec *Spec) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, spec); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Encode writes spec to w, indented, followed by a newline.
func Encode(w io.Writer, spec *Spec) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(spec)
}

// WriteJSON writes the encoded spec to filename.
func WriteJSON(spec *Spec, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Encode(f, spec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
