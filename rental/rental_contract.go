package rental

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/neo"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
	"github.com/nspcc-dev/rental-contract/common"
)

// RentState is the state of a single active rent. A rent exists iff its
// state is stored, so Owner is never empty. Agreement is fixed at creation
// and never changes; Approved/ApprovalSet hold the single-delegate approval
// and are reset on every transfer.
type RentState struct {
	// Current holder of the rent.
	Owner interop.Hash160
	// Single-delegate approval.
	ApprovalSet bool
	Approved    interop.Hash160
	// Optional controller with exclusive termination rights.
	Agreement interop.Hash160
	// Asset reference the rent was derived from.
	Registry interop.Hash160
	AssetID  []byte
	// Nesting depth, 0 for rents taken directly from the asset owner.
	Depth int
}

// Prefixes used for contract data storage.
const (
	// prefixTotalSupply contains the overall number of active rents.
	prefixTotalSupply byte = 0x00
	// prefixBalance contains map from holder to the number of rents held.
	prefixBalance byte = 0x01
	// prefixAccountToken contains map from (holder + token ID) to token ID,
	// used for tokensOf iteration.
	prefixAccountToken byte = 0x02
	// prefixRent contains map from token ID to serialized RentState.
	prefixRent byte = 0x03
	// prefixOperator contains map from (owner + operator) to a flag marking
	// the operator as authorized for all of the owner's rents.
	prefixOperator byte = 0x04
)

// Values constraints.
const (
	// maxRentDepth bounds rent nesting: the deepest possible sub-rent has
	// depth maxRentDepth-1 and every traversal loop runs at most
	// maxRentDepth iterations.
	maxRentDepth = 8
	// rentTokenIDSize is the size of a rent token ID: SHA256 of the asset
	// reference plus one explicit depth byte.
	rentTokenIDSize = 33
)

// Error messages panicked by the contract methods.
const (
	// ErrNotExists is thrown when the referenced rent is not recorded.
	ErrNotExists = "rent does not exist"
	// ErrAlreadyExists is thrown on an attempt to rent the same asset twice.
	ErrAlreadyExists = "rent already exists"
	// ErrNotAuthorized is thrown when none of the transaction signers plays
	// the role required by the invoked method.
	ErrNotAuthorized = "not authorized"
	// ErrNotAuthorizedByAgreement is thrown when a rent with a recorded
	// agreement is destroyed by anyone but the agreement contract.
	ErrNotAuthorizedByAgreement = "not authorized by agreement"
	// ErrMaxDepthExceeded is thrown when rent derivation would pass the
	// nesting bound. This is a hard ceiling, not a retryable condition.
	ErrMaxDepthExceeded = "max rent depth exceeded"
)

// Update updates the rental contract.
func Update(nef []byte, manifest string, data interface{}) {
	checkCommittee()
	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nef, manifest, common.AppendVersion(data))
	runtime.Log("rental contract updated")
}

// _deploy initializes total supply on contract deploy.
func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	ctx := storage.GetContext()
	storage.Put(ctx, []byte{prefixTotalSupply}, 0)
}

// Symbol returns the rent token symbol.
func Symbol() string {
	return "RENT"
}

// Decimals returns the rent token decimals.
func Decimals() int {
	return 0
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// TotalSupply returns the overall number of active rents.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return getTotalSupply(ctx)
}

// OwnerOf returns the current holder of the specified rent.
func OwnerOf(tokenID []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getRentState(ctx, tokenID).Owner
}

// BalanceOf returns the number of rents held by the specified holder.
func BalanceOf(owner interop.Hash160) int {
	if !isValid(owner) {
		panic("invalid owner")
	}
	ctx := storage.GetReadOnlyContext()
	balance := storage.Get(ctx, append([]byte{prefixBalance}, owner...))
	if balance == nil {
		return 0
	}
	return balance.(int)
}

// Tokens returns iterator over all active rent token IDs.
func Tokens() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{prefixRent}, storage.KeysOnly|storage.RemovePrefix)
}

// TokensOf returns iterator over rent token IDs held by the specified holder.
func TokensOf(owner interop.Hash160) iterator.Iterator {
	if !isValid(owner) {
		panic("invalid owner")
	}
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{prefixAccountToken}, owner...), storage.ValuesOnly)
}

// Properties returns the asset reference, depth and agreement of the
// specified rent.
func Properties(tokenID []byte) map[string]interface{} {
	ctx := storage.GetReadOnlyContext()
	st := getRentState(ctx, tokenID)
	return map[string]interface{}{
		"registry":  st.Registry,
		"assetId":   st.AssetID,
		"depth":     st.Depth,
		"agreement": st.Agreement,
	}
}

// Transfer passes the rent to a new holder. The invocation must be witnessed
// by the current holder, the approved delegate or one of the holder's
// operators, otherwise false is returned. The single-delegate approval is
// cleared on success. If the receiver is a deployed contract, its
// onNEP11Payment method is called after the transfer is recorded and may
// abort the transaction to refuse the rent.
func Transfer(to interop.Hash160, tokenID []byte, data interface{}) bool {
	if !isValid(to) {
		panic("invalid receiver")
	}
	if util.Equals(to, runtime.GetExecutingScriptHash()) {
		panic("transfer to the rental contract itself")
	}
	ctx := storage.GetContext()
	st := getRentState(ctx, tokenID)
	from := st.Owner
	if !tokenAuthorized(ctx, st) {
		return false
	}
	if !util.Equals(from, to) {
		st.Owner = to
		st.ApprovalSet = false
		st.Approved = nil
		putRentState(ctx, tokenID, st)

		updateBalance(ctx, tokenID, from, -1)
		updateBalance(ctx, tokenID, to, +1)
	}
	postTransfer(from, to, tokenID, data)
	return true
}

// Approve sets the single delegate approved to transfer the specified rent.
// Requires the holder's witness; a nil delegate clears the approval.
func Approve(delegate interop.Hash160, tokenID []byte) {
	if delegate != nil && len(delegate) != interop.Hash160Len {
		panic("invalid delegate")
	}
	ctx := storage.GetContext()
	st := getRentState(ctx, tokenID)
	common.CheckOwnerWitness(st.Owner)
	st.ApprovalSet = delegate != nil
	st.Approved = delegate
	putRentState(ctx, tokenID, st)
	runtime.Notify("Approval", st.Owner, delegate, tokenID)
}

// GetApproved returns the approved delegate of the specified rent or null if
// there is none.
func GetApproved(tokenID []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	st := getRentState(ctx, tokenID)
	if !st.ApprovalSet {
		return nil
	}
	return st.Approved
}

// SetApprovalForAll records or removes the operator authorized to act on all
// rents of the specified owner. Requires the owner's witness.
func SetApprovalForAll(owner, operator interop.Hash160, allowed bool) {
	if !isValid(owner) || !isValid(operator) {
		panic("invalid owner or operator")
	}
	common.CheckOwnerWitness(owner)
	ctx := storage.GetContext()
	key := operatorKey(owner, operator)
	if allowed {
		storage.Put(ctx, key, []byte{1})
	} else {
		storage.Delete(ctx, key)
	}
	runtime.Notify("ApprovalForAll", owner, operator, allowed)
}

// IsApprovedForAll returns true if the operator is recorded for the owner.
func IsApprovedForAll(owner, operator interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, operatorKey(owner, operator)) != nil
}

// RentTokenID derives the rent token ID of the specified asset. The
// derivation is pure: it either returns the same ID for the same reference or
// panics with ErrMaxDepthExceeded when the asset is a rent token of this
// contract at the maximum depth.
func RentTokenID(registry interop.Hash160, assetID []byte) []byte {
	return rentTokenID(registry, assetID)
}

// IsRented returns true if the specified asset has an active rent.
func IsRented(registry interop.Hash160, assetID []byte) bool {
	ctx := storage.GetReadOnlyContext()
	tokenID := rentTokenID(registry, assetID)
	return storage.Get(ctx, rentKey(tokenID)) != nil
}

// Agreement returns the agreement contract of the specified rent or null if
// the rent was created without one.
func Agreement(tokenID []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getRentState(ctx, tokenID).Agreement
}

// AgreementOf is Agreement for a rent referenced by its asset.
func AgreementOf(registry interop.Hash160, assetID []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getRentState(ctx, rentTokenID(registry, assetID)).Agreement
}

// CurrentUser returns the effective user of the specified asset: the holder
// of the deepest active sub-rent, or the asset owner if the asset is not
// rented at all.
func CurrentUser(registry interop.Hash160, assetID []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	tokenID := rentTokenID(registry, assetID)
	data := storage.Get(ctx, rentKey(tokenID))
	if data == nil {
		return upstreamOwner(ctx, registry, assetID)
	}
	st := std.Deserialize(data.([]byte)).(RentState)
	user := st.Owner
	self := runtime.GetExecutingScriptHash()
	cur := tokenID
	for d := st.Depth + 1; d < maxRentDepth; d++ {
		child := rentTokenIDAtDepth(self, cur, d)
		childData := storage.Get(ctx, rentKey(child))
		if childData == nil {
			break
		}
		childState := std.Deserialize(childData.([]byte)).(RentState)
		user = childState.Owner
		cur = child
	}
	return user
}

// CreateRent establishes a rent of the specified asset for the renter. The
// invocation must be authorized by the asset owner: the owner recorded in the
// external registry, or, when the registry is this contract itself, the
// holder of the rent referenced by assetID (which makes the new rent a
// sub-rent one level deeper). An optional agreement contract gets exclusive
// rights to destroy the rent.
func CreateRent(registry interop.Hash160, assetID []byte, renter, agreement interop.Hash160) {
	if !isValid(renter) {
		panic("invalid renter")
	}
	if agreement != nil && len(agreement) != interop.Hash160Len {
		panic("invalid agreement")
	}
	ctx := storage.GetContext()
	owner := upstreamOwner(ctx, registry, assetID)
	if !ownerSideAuthorized(ctx, registry, owner) {
		panic(ErrNotAuthorized)
	}
	tokenID := rentTokenID(registry, assetID)
	if storage.Get(ctx, rentKey(tokenID)) != nil {
		panic(ErrAlreadyExists)
	}
	st := RentState{
		Owner:     renter,
		Agreement: agreement,
		Registry:  registry,
		AssetID:   assetID,
		Depth:     int(tokenID[rentTokenIDSize-1]),
	}
	mint(ctx, tokenID, st)
	runtime.Notify("RentCreated", tokenID, registry, assetID, renter, agreement)
	postTransfer(nil, renter, tokenID, nil)
}

// DestroyRent terminates the rent of the specified asset together with every
// active sub-rent derived from it. When the rent has a recorded agreement,
// only the agreement's witness may destroy it; otherwise the rent holder,
// the asset owner or an operator of either may.
func DestroyRent(registry interop.Hash160, assetID []byte) {
	ctx := storage.GetContext()
	tokenID := rentTokenID(registry, assetID)
	st := getRentState(ctx, tokenID)
	if st.Agreement != nil {
		if !runtime.CheckWitness(st.Agreement) {
			panic(ErrNotAuthorizedByAgreement)
		}
	} else if !holderAuthorized(ctx, st.Owner) {
		owner := upstreamOwner(ctx, registry, assetID)
		if !ownerSideAuthorized(ctx, registry, owner) {
			panic(ErrNotAuthorized)
		}
	}
	runtime.Notify("RentRemoved", tokenID, registry, assetID, st.Owner)
	burn(ctx, tokenID, st)

	self := runtime.GetExecutingScriptHash()
	cur := tokenID
	for d := st.Depth + 1; d < maxRentDepth; d++ {
		child := rentTokenIDAtDepth(self, cur, d)
		data := storage.Get(ctx, rentKey(child))
		if data == nil {
			break
		}
		childState := std.Deserialize(data.([]byte)).(RentState)
		runtime.Notify("RentRemoved", child, self, cur, childState.Owner)
		burn(ctx, child, childState)
		cur = child
	}
}

// rentTokenID derives the token ID of the rent of the given asset: depth 0
// for assets of external registries, parent depth + 1 when the registry is
// this contract and assetID is an existing rent token ID.
func rentTokenID(registry interop.Hash160, assetID []byte) []byte {
	self := runtime.GetExecutingScriptHash()
	if !util.Equals(registry, self) {
		return rentTokenIDAtDepth(registry, assetID, 0)
	}
	if len(assetID) != rentTokenIDSize {
		panic("invalid rent token ID")
	}
	depth := int(assetID[rentTokenIDSize-1]) + 1
	if depth >= maxRentDepth {
		panic(ErrMaxDepthExceeded)
	}
	return rentTokenIDAtDepth(self, assetID, depth)
}

// rentTokenIDAtDepth computes SHA256 of the asset reference and appends the
// explicit depth byte.
func rentTokenIDAtDepth(registry interop.Hash160, assetID []byte, depth int) []byte {
	ref := append([]byte{}, registry...)
	ref = append(ref, assetID...)
	return append([]byte(crypto.Sha256(ref)), byte(depth))
}

// upstreamOwner resolves the owner a rent of the given asset must be
// authorized by: the registry's recorded owner for external assets, the
// current holder of the referenced rent when sub-letting.
func upstreamOwner(ctx storage.Context, registry interop.Hash160, assetID []byte) interop.Hash160 {
	if util.Equals(registry, runtime.GetExecutingScriptHash()) {
		return getRentState(ctx, assetID).Owner
	}
	return contract.Call(registry, "ownerOf", contract.ReadOnly, assetID).(interop.Hash160)
}

// ownerSideAuthorized reports whether the invocation is witnessed by the
// asset owner or by one of the owner's operators. Operators are resolved
// against this contract's records when the registry is the contract itself
// and via the registry's isOperatorForAll otherwise.
func ownerSideAuthorized(ctx storage.Context, registry, owner interop.Hash160) bool {
	if runtime.CheckWitness(owner) {
		return true
	}
	if util.Equals(registry, runtime.GetExecutingScriptHash()) {
		return signerIsOperator(ctx, owner)
	}
	signers := runtime.CurrentSigners()
	for i := 0; i < len(signers); i++ {
		allowed := contract.Call(registry, "isOperatorForAll", contract.ReadOnly,
			owner, signers[i].Account).(bool)
		if allowed {
			return true
		}
	}
	return false
}

// holderAuthorized reports whether the invocation is witnessed by the rent
// holder or one of the holder's operators.
func holderAuthorized(ctx storage.Context, holder interop.Hash160) bool {
	if runtime.CheckWitness(holder) {
		return true
	}
	return signerIsOperator(ctx, holder)
}

// tokenAuthorized reports whether the invocation is witnessed by the rent
// holder, the approved delegate or one of the holder's operators.
func tokenAuthorized(ctx storage.Context, st RentState) bool {
	if runtime.CheckWitness(st.Owner) {
		return true
	}
	if st.ApprovalSet && runtime.CheckWitness(st.Approved) {
		return true
	}
	return signerIsOperator(ctx, st.Owner)
}

// signerIsOperator reports whether any transaction signer is a recorded
// operator of the given owner.
func signerIsOperator(ctx storage.Context, owner interop.Hash160) bool {
	signers := runtime.CurrentSigners()
	for i := 0; i < len(signers); i++ {
		if storage.Get(ctx, operatorKey(owner, signers[i].Account)) != nil {
			return true
		}
	}
	return false
}

// mint records a new rent and adjusts holder bookkeeping.
func mint(ctx storage.Context, tokenID []byte, st RentState) {
	putRentState(ctx, tokenID, st)
	updateBalance(ctx, tokenID, st.Owner, +1)
	updateTotalSupply(ctx, +1)
}

// burn removes the rent record, adjusts holder bookkeeping and sends the
// NEP-11 Transfer notification to null. No receiver callback is made on
// burn.
func burn(ctx storage.Context, tokenID []byte, st RentState) {
	storage.Delete(ctx, rentKey(tokenID))
	updateBalance(ctx, tokenID, st.Owner, -1)
	updateTotalSupply(ctx, -1)
	// to must be a typed nil, the compiler maps an untyped one to Any in
	// the manifest event check.
	var to interop.Hash160
	runtime.Notify("Transfer", st.Owner, to, 1, tokenID)
}

// postTransfer sends the Transfer notification and calls onNEP11Payment when
// the receiver is a deployed contract. All storage writes are finalized
// before this point.
func postTransfer(from, to interop.Hash160, tokenID []byte, data interface{}) {
	runtime.Notify("Transfer", from, to, 1, tokenID)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP11Payment", contract.All, from, 1, tokenID, data)
	}
}

// updateBalance updates the holder's balance and the account-token index.
func updateBalance(ctx storage.Context, tokenID []byte, acc interop.Hash160, diff int) {
	balanceKey := append([]byte{prefixBalance}, acc...)
	var balance int
	if b := storage.Get(ctx, balanceKey); b != nil {
		balance = b.(int)
	}
	balance += diff
	if balance == 0 {
		storage.Delete(ctx, balanceKey)
	} else {
		storage.Put(ctx, balanceKey, balance)
	}

	accountTokenKey := append(append([]byte{prefixAccountToken}, acc...), tokenID...)
	if diff < 0 {
		storage.Delete(ctx, accountTokenKey)
	} else {
		storage.Put(ctx, accountTokenKey, tokenID)
	}
}

// getRentState returns the rent state stored for the token ID.
func getRentState(ctx storage.Context, tokenID []byte) RentState {
	data := storage.Get(ctx, rentKey(tokenID))
	if data == nil {
		panic(ErrNotExists)
	}
	return std.Deserialize(data.([]byte)).(RentState)
}

// putRentState stores the rent state for the token ID.
func putRentState(ctx storage.Context, tokenID []byte, st RentState) {
	common.SetSerialized(ctx, rentKey(tokenID), st)
}

func rentKey(tokenID []byte) []byte {
	return append([]byte{prefixRent}, tokenID...)
}

func operatorKey(owner, operator interop.Hash160) []byte {
	return append(append([]byte{prefixOperator}, owner...), operator...)
}

// getTotalSupply returns total supply from storage.
func getTotalSupply(ctx storage.Context) int {
	val := storage.Get(ctx, []byte{prefixTotalSupply})
	return val.(int)
}

// updateTotalSupply adds the specified diff to the total supply.
func updateTotalSupply(ctx storage.Context, diff int) {
	tsKey := []byte{prefixTotalSupply}
	ts := getTotalSupply(ctx)
	storage.Put(ctx, tsKey, ts+diff)
}

// isValid returns true if the provided address is a valid Uint160.
func isValid(address interop.Hash160) bool {
	return address != nil && len(address) == interop.Hash160Len
}

// checkCommittee panics if the script container is not signed by the committee.
func checkCommittee() {
	committee := neo.GetCommittee()
	if committee == nil {
		panic("failed to get committee")
	}
	l := len(committee)
	committeeMultisig := contract.CreateMultisigAccount(l-(l-1)/2, committee)
	if committeeMultisig == nil || !runtime.CheckWitness(committeeMultisig) {
		panic("not witnessed by committee")
	}
}
