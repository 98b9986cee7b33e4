/*
Rental contract is a non-divisible NEP-11 token keeping a rights-delegation
ledger. Every token represents a revocable, time-unbounded right to use an
asset recorded in some registry contract. The rent is established by the
asset owner and may be sub-let further by its holder: the rental contract
itself then plays the role of the registry and the parent rent token plays
the role of the asset. Nesting is capped at 8 levels.

Token IDs are derived, not assigned: SHA256 of the asset reference
(registry script hash and asset identifier) followed by one explicit depth
byte. The derivation is deterministic, so the rent of a given asset always
has the same ID and the tree of sub-rents is reconstructed from the IDs
alone, without parent or child pointers in storage.

Destroying a rent also destroys every active sub-rent derived from it. A
rent may record an agreement contract at creation; if it does, only that
contract may destroy the rent.

# Contract notifications

Transfer notification (NEP-11). Produced on every rent creation (from is
null), transfer and destruction (to is null).

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: tokenId
	    type: ByteArray

Approval notification. Produced when the rent holder sets or clears the
single approved delegate.

	Approval:
	  - name: owner
	    type: Hash160
	  - name: delegate
	    type: Any
	  - name: tokenId
	    type: ByteArray

ApprovalForAll notification. Produced when an owner records or removes a
blanket operator.

	ApprovalForAll:
	  - name: owner
	    type: Hash160
	  - name: operator
	    type: Hash160
	  - name: allowed
	    type: Boolean

RentCreated notification. Produced once per established rent.

	RentCreated:
	  - name: tokenId
	    type: ByteArray
	  - name: registry
	    type: Hash160
	  - name: assetId
	    type: ByteArray
	  - name: renter
	    type: Hash160
	  - name: agreement
	    type: Any

RentRemoved notification. Produced once per destroyed rent, including every
sub-rent removed by a cascade.

	RentRemoved:
	  - name: tokenId
	    type: ByteArray
	  - name: registry
	    type: Hash160
	  - name: assetId
	    type: ByteArray
	  - name: owner
	    type: Hash160
*/
package rental
