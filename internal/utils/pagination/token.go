// Package pagination implements opaque cursor tokens for keyset pagination.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken builds an opaque cursor from the entry date and creation time
// of the last row on a page.
func EncodeToken(entryDate, createdAt time.Time) string {
	raw := fmt.Sprintf("%s|%s", entryDate.Format(timeFormat), createdAt.Format(timeFormat))
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeToken parses a cursor produced by EncodeToken.
func DecodeToken(token string) (entryDate, createdAt time.Time, err error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token: %w", err)
	}
	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token: missing separator")
	}
	entryDate, err = time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token: %w", err)
	}
	createdAt, err = time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token: %w", err)
	}
	return entryDate, createdAt, nil
}
