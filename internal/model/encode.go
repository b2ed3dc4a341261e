package model

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	// CreatePath is the path suffix of the share creation endpoint, the only
	// one that takes a JSON body.
	CreatePath = "/api/create"

	ContentTypeJSON = "application/json; charset=UTF-8"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// EncodeForm renders f as application/x-www-form-urlencoded in insertion order.
func EncodeForm(f Form) (string, error) {
	var sb strings.Builder
	var err error
	f.Each(func(k, v string) {
		if err != nil {
			return
		}
		if !utf8.ValidString(k) || !utf8.ValidString(v) {
			err = ErrInvalidEncoding
			return
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(v))
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// EncodeJSON renders f as a flat JSON object of string members, keeping
// insertion order. strings are escaped by encoding/json.
func EncodeJSON(f Form) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	var err error
	buf.WriteByte('{')
	first := true
	f.Each(func(k, v string) {
		if err != nil {
			return
		}
		if !utf8.ValidString(k) || !utf8.ValidString(v) {
			err = ErrInvalidEncoding
			return
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err = enc.Encode(k); err != nil {
			return
		}
		buf.Truncate(buf.Len() - 1) // Encode appends a newline
		buf.WriteByte(':')
		if err = enc.Encode(v); err != nil {
			return
		}
		buf.Truncate(buf.Len() - 1)
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IsCreateEndpoint reports whether path addresses the share creation endpoint.
func IsCreateEndpoint(path string) bool {
	return strings.HasSuffix(path, CreatePath)
}
