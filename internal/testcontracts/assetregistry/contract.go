// Package assetregistry is a minimal asset registry contract implementing the
// collaborator surface the rental contract consumes: ownerOf and
// isOperatorForAll. Mint and setOperator exist to drive tests.
package assetregistry

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	prefixAsset    byte = 0x01
	prefixOperator byte = 0x02
)

func Mint(owner interop.Hash160, assetID []byte) {
	if owner == nil || len(owner) != interop.Hash160Len {
		panic("invalid owner")
	}
	ctx := storage.GetContext()
	key := assetKey(assetID)
	if storage.Get(ctx, key) != nil {
		panic("asset already exists")
	}
	storage.Put(ctx, key, owner)
}

func OwnerOf(assetID []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	data := storage.Get(ctx, assetKey(assetID))
	if data == nil {
		panic("asset not found")
	}
	return interop.Hash160(data.([]byte))
}

func SetOperator(owner, operator interop.Hash160, allowed bool) {
	if !runtime.CheckWitness(owner) {
		panic("owner witness check failed")
	}
	ctx := storage.GetContext()
	key := operatorKey(owner, operator)
	if allowed {
		storage.Put(ctx, key, []byte{1})
	} else {
		storage.Delete(ctx, key)
	}
}

func IsOperatorForAll(owner, operator interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, operatorKey(owner, operator)) != nil
}

func assetKey(assetID []byte) []byte {
	return append([]byte{prefixAsset}, assetID...)
}

func operatorKey(owner, operator interop.Hash160) []byte {
	return append(append([]byte{prefixOperator}, owner...), operator...)
}
