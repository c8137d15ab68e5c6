// Package encoding provides charset conversion for mesh and material text.
//
// Exporters from older modelling tools frequently write group and material
// names in a legacy code page (EUC-KR, Shift_JIS, Windows-1252). Readers
// and writers here convert such text to and from UTF-8.
package encoding

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// UTF8 is the name of the default, pass-through encoding.
const UTF8 = "utf-8"

// Lookup resolves an encoding by its WHATWG/IANA label ("euc-kr",
// "shift_jis", "windows-1252", ...). An empty name means UTF-8.
func Lookup(name string) (encoding.Encoding, error) {
	if isUTF8(name) {
		return encoding.Nop, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown text encoding %q: %w", name, err)
	}
	return enc, nil
}

// NewReader wraps r so that it yields UTF-8 decoded from the named encoding.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	if isUTF8(name) {
		return r, nil
	}
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// NewWriter wraps w so that UTF-8 written to it is encoded to the named
// encoding.
func NewWriter(w io.Writer, name string) (io.Writer, error) {
	if isUTF8(name) {
		return w, nil
	}
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return transform.NewWriter(w, enc.NewEncoder()), nil
}

// ToUTF8 converts data in the named encoding to a UTF-8 string.
// Returns the original bytes as a string if conversion fails.
func ToUTF8(data []byte, name string) string {
	enc, err := Lookup(name)
	if err != nil {
		return string(data)
	}
	result, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// FromUTF8 converts a UTF-8 string to the named encoding.
// Returns the original bytes if conversion fails.
func FromUTF8(s string, name string) []byte {
	enc, err := Lookup(name)
	if err != nil {
		return []byte(s)
	}
	result, _, err := transform.Bytes(enc.NewEncoder(), []byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}

func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}
