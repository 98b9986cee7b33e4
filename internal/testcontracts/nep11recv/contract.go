// Package nep11recv is a NEP-11 receiver contract recording the last payment
// it got. A reject switch makes it refuse incoming tokens, which is used to
// check that a faulted receiver call leaves no partial ledger state behind.
package nep11recv

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type Receipt struct {
	From    interop.Hash160
	TokenID []byte
	Data    any
}

const (
	receiptKey = "receipt"
	rejectKey  = "reject"
)

func OnNEP11Payment(from interop.Hash160, amount int, tokenID []byte, data any) {
	ctx := storage.GetContext()
	if storage.Get(ctx, rejectKey) != nil {
		panic("rent not accepted")
	}
	if amount != 1 {
		panic("wrong amount")
	}
	storage.Put(ctx, receiptKey, std.Serialize(Receipt{
		From:    from,
		TokenID: tokenID,
		Data:    data,
	}))
}

func SetReject(reject bool) {
	ctx := storage.GetContext()
	if reject {
		storage.Put(ctx, rejectKey, []byte{1})
	} else {
		storage.Delete(ctx, rejectKey)
	}
}

func Last() Receipt {
	val := storage.Get(storage.GetReadOnlyContext(), receiptKey)
	if val == nil {
		return Receipt{}
	}
	return std.Deserialize(val.([]byte)).(Receipt)
}

func Verify() bool {
	return true
}
