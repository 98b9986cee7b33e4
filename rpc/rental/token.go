package rental

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// TokenIDSize is the size of a rent token ID: SHA256 of the asset reference
// followed by one depth byte.
const TokenIDSize = 33

// MaxDepth is the rent nesting bound, token depth is always below it.
const MaxDepth = 8

// errInvalidTokenID is returned for byte sequences that can't be a rent
// token ID.
var errInvalidTokenID = errors.New("invalid rent token ID")

// StringFromTokenID returns the user-facing base58 form of a rent token ID.
func StringFromTokenID(id []byte) (string, error) {
	if len(id) != TokenIDSize || int(id[TokenIDSize-1]) >= MaxDepth {
		return "", errInvalidTokenID
	}
	return base58.Encode(id), nil
}

// TokenIDFromString decodes the base58 form produced by StringFromTokenID
// back into a rent token ID.
func TokenIDFromString(s string) ([]byte, error) {
	id, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTokenID, err)
	}
	if len(id) != TokenIDSize || int(id[TokenIDSize-1]) >= MaxDepth {
		return nil, errInvalidTokenID
	}
	return id, nil
}

// DepthOf extracts the nesting depth embedded into a rent token ID.
func DepthOf(id []byte) (int, error) {
	if len(id) != TokenIDSize || int(id[TokenIDSize-1]) >= MaxDepth {
		return 0, errInvalidTokenID
	}
	return int(id[TokenIDSize-1]), nil
}
