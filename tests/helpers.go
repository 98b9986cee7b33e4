package tests

import "github.com/google/uuid"

// newAssetID returns a unique external asset identifier.
func newAssetID() []byte {
	id := uuid.New()
	return id[:]
}
