package badger

import "bytes"

// Key prefix for company records
const (
	companyRecordPrefix = "company:"
)

// makeCompanyKey generates a key for a company record.
// Format: prefix + normalized name
func makeCompanyKey(key string) []byte {
	buf := make([]byte, 0, len(companyRecordPrefix)+len(key))
	buf = append(buf, companyRecordPrefix...)
	return append(buf, key...)
}

// hasPrefix checks if a byte slice has a given prefix
func hasPrefix(s, prefix []byte) bool {
	return bytes.HasPrefix(s, prefix)
}
