package badger

import "strings"

// Key prefixes for different data types
const (
	objectDataPrefix = "objdat:"
	objectMetaPrefix = "objmeta:"
)

// makeObjectDataKey generates the key holding an object's bytes.
func makeObjectDataKey(key string) []byte {
	return []byte(objectDataPrefix + key)
}

// makeObjectMetaKey generates the key holding an object's metadata.
// Format: prefix:objectKey
func makeObjectMetaKey(key string) []byte {
	return []byte(objectMetaPrefix + key)
}

// objectKeyFromMeta recovers the object key from a metadata key.
func objectKeyFromMeta(metaKey []byte) string {
	return strings.TrimPrefix(string(metaKey), objectMetaPrefix)
}
