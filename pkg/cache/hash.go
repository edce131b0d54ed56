package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keyKind names what a cache entry holds. It leads every key, so a plan and
// an artifact derived from identical inputs never share an entry.
type keyKind string

const (
	kindPlan     keyKind = "plan"
	kindArtifact keyKind = "artifact"
)

// key returns "kind:digest", where digest is the hex SHA-256 over the JSON
// encoding of each input in order, one value per line.
func (k keyKind) key(inputs ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, in := range inputs {
		// Inputs are strings and plain option structs; Encode cannot fail on them.
		_ = enc.Encode(in)
	}
	return string(k) + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data. The pipeline uses it to identify a
// manifest by its raw bytes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
