package csv

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ParseString creates a Parser over an in-memory string.
func ParseString(input string, d Dialect) (*Parser, error) {
	return NewParser(strings.NewReader(input), d)
}

// ParseFile opens path and creates a Parser over its contents, decoding
// from the named IANA charset ("" or "utf-8" means none). The parser owns
// the file; Close releases it.
func ParseFile(path, charset string, d Dialect) (*Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := decodeReader(f, charset)
	if err != nil {
		f.Close()
		return nil, err
	}
	p, err := NewParser(r, d)
	if err != nil {
		f.Close()
		return nil, err
	}
	p.closer = f
	return p, nil
}

// ParseURL fetches rawURL and creates a Parser over the response body,
// decoding from the named IANA charset. The parser owns the body; Close
// releases it.
func ParseURL(rawURL, charset string, d Dialect) (*Parser, error) {
	resp, err := http.Get(rawURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("csv: fetch %s: %s", rawURL, resp.Status)
	}
	r, err := decodeReader(resp.Body, charset)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	p, err := NewParser(r, d)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	p.closer = resp.Body
	return p, nil
}

// decodeReader wraps r with a charset decoder looked up in the IANA
// registry. The core only ever sees a character stream.
func decodeReader(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return r, nil
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, &ConfigError{Option: "charset", Message: "unsupported charset " + charset}
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
