// Package rental contains RPC wrappers for Rental contract.
package rental

import (
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/nep11"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	nep11.Invoker
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	nep11.Actor

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	nep11.NonDivisibleReader
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	nep11.BaseWriter
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{*nep11.NewNonDivisibleReader(invoker, hash), invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	var nep11ndt = nep11.NewNonDivisible(actor, hash)
	return &Contract{ContractReader{nep11ndt.NonDivisibleReader, actor, hash}, nep11ndt.BaseWriter, actor, hash}
}

// Agreement invokes `agreement` method of contract.
func (c *ContractReader) Agreement(tokenId []byte) (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "agreement", tokenId))
}

// AgreementOf invokes `agreementOf` method of contract.
func (c *ContractReader) AgreementOf(registry util.Uint160, assetId []byte) (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "agreementOf", registry, assetId))
}

// CurrentUser invokes `currentUser` method of contract.
func (c *ContractReader) CurrentUser(registry util.Uint160, assetId []byte) (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "currentUser", registry, assetId))
}

// IsRented invokes `isRented` method of contract.
func (c *ContractReader) IsRented(registry util.Uint160, assetId []byte) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isRented", registry, assetId))
}

// RentTokenID invokes `rentTokenID` method of contract.
func (c *ContractReader) RentTokenID(registry util.Uint160, assetId []byte) ([]byte, error) {
	return unwrap.Bytes(c.invoker.Call(c.hash, "rentTokenID", registry, assetId))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Approve creates a transaction invoking `approve` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Approve(delegate util.Uint160, tokenId []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "approve", delegate, tokenId)
}

// ApproveTransaction creates a transaction invoking `approve` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ApproveTransaction(delegate util.Uint160, tokenId []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "approve", delegate, tokenId)
}

// ApproveUnsigned creates a transaction invoking `approve` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ApproveUnsigned(delegate util.Uint160, tokenId []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "approve", nil, delegate, tokenId)
}

// CreateRent creates a transaction invoking `createRent` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateRent(registry util.Uint160, assetId []byte, renter util.Uint160, agreement util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createRent", registry, assetId, renter, agreement)
}

// CreateRentTransaction creates a transaction invoking `createRent` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateRentTransaction(registry util.Uint160, assetId []byte, renter util.Uint160, agreement util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createRent", registry, assetId, renter, agreement)
}

// CreateRentUnsigned creates a transaction invoking `createRent` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateRentUnsigned(registry util.Uint160, assetId []byte, renter util.Uint160, agreement util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createRent", nil, registry, assetId, renter, agreement)
}

// DestroyRent creates a transaction invoking `destroyRent` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) DestroyRent(registry util.Uint160, assetId []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "destroyRent", registry, assetId)
}

// DestroyRentTransaction creates a transaction invoking `destroyRent` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DestroyRentTransaction(registry util.Uint160, assetId []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "destroyRent", registry, assetId)
}

// DestroyRentUnsigned creates a transaction invoking `destroyRent` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DestroyRentUnsigned(registry util.Uint160, assetId []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "destroyRent", nil, registry, assetId)
}

// SetApprovalForAll creates a transaction invoking `setApprovalForAll` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetApprovalForAll(owner util.Uint160, operator util.Uint160, allowed bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setApprovalForAll", owner, operator, allowed)
}

// SetApprovalForAllTransaction creates a transaction invoking `setApprovalForAll` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetApprovalForAllTransaction(owner util.Uint160, operator util.Uint160, allowed bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setApprovalForAll", owner, operator, allowed)
}

// SetApprovalForAllUnsigned creates a transaction invoking `setApprovalForAll` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetApprovalForAllUnsigned(owner util.Uint160, operator util.Uint160, allowed bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setApprovalForAll", nil, owner, operator, allowed)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nef []byte, manifest string, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nef, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nef []byte, manifest string, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nef, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nef []byte, manifest string, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nef, manifest, data)
}
