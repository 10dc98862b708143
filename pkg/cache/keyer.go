package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
)

// Keyer builds cache keys. Implementations must include every input that
// changes the cached bytes.
type Keyer interface {
	// DatasetKey identifies a parsed dataset by its source content.
	DatasetKey(contentHash string, opts DatasetKeyOpts) string

	// ArtifactKey identifies one rendered output of a chart model.
	ArtifactKey(modelHash string, opts ArtifactKeyOpts) string
}

// DatasetKeyOpts are the parse options that change a dataset.
type DatasetKeyOpts struct {
	Format string `json:"format"`
	Sheet  string `json:"sheet,omitempty"`
}

// ArtifactKeyOpts are the sink options that change an artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Scale       float64 `json:"scale,omitempty"`
	FontHash    string  `json:"font_hash,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
	Title       string  `json:"title,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DatasetKey returns "dataset:<sha256>".
func (DefaultKeyer) DatasetKey(contentHash string, opts DatasetKeyOpts) string {
	return hashKey("dataset", contentHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(modelHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", modelHash, opts)
}

// Hash returns the hex SHA-256 of data. Several parts are length-prefixed
// so that ("ab", "c") and ("a", "bc") hash differently.
func Hash(parts ...[]byte) string {
	if len(parts) == 1 {
		sum := sha256.Sum256(parts[0])
		return hex.EncodeToString(sum[:])
	}
	h := sha256.New()
	var n [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// hashKey returns "prefix:<sha256 of the JSON encoded parts>".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
