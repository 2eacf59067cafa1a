package storage

import "unicode/utf8"

// Sentinel is greater than every character that can appear in a key.
// UTF-8 byte order matches code point order, so appending it to q gives an
// exclusive upper bound for all keys starting with q.
const Sentinel = utf8.MaxRune

// PrefixRange returns the half-open key range [q, q+Sentinel) that holds
// exactly the keys starting with q.
func PrefixRange(q string) (lower, upper string) {
	return q, q + string(Sentinel)
}
