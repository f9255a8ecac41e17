package pagination

import (
	"encoding/base64"
	"strings"
)

// EncodeMulti builds raw tokens for malformed-input tests.
func EncodeMulti(fields ...string) string {
	return base64.URLEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}
