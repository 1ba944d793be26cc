package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Tokens travel in query strings, so they use the URL-safe alphabet.
var tokenEncoding = base64.RawURLEncoding

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	return tokenEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

// DecodeMultiFieldToken decodes a token into exactly want fields.
func DecodeMultiFieldToken(token string, want int) ([]string, error) {
	decodedBytes, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.Split(string(decodedBytes), "|")
	if len(parts) != want {
		return nil, fmt.Errorf("invalid pagination token format (expected %d fields, got %d)", want, len(parts))
	}
	return parts, nil
}

// EncodeIDToken creates a token resuming after the row with the given sequential id.
func EncodeIDToken(lastID int64) string {
	return EncodeMultiFieldToken(strconv.FormatInt(lastID, 10))
}

// DecodeIDToken is the inverse of EncodeIDToken.
func DecodeIDToken(token string) (int64, error) {
	fields, err := DecodeMultiFieldToken(token, 1)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid pagination token format (id parse): %q", fields[0])
	}
	return id, nil
}
