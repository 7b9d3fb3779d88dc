// Package presign defines the canonically encoded payloads a signer produces
// off-chain to authorize minting or attribute writes, and the signature
// scheme used to verify them. The registry consumes Verify as an opaque
// capability; the scheme is EdDSA over the BN254 twisted Edwards curve.
package presign

// MintData authorizes a third party to mint a specific item, with optional
// attributes, metadata and payment.
type MintData struct {
	// Collection is the target collection id.
	Collection uint32 `cbor:"1,keyasint"`

	// Item is the id to mint. An already-minted id makes the payload
	// unusable, which is what bounds replay.
	Item uint32 `cbor:"2,keyasint"`

	// Attributes are key/value pairs set alongside the mint.
	Attributes [][2][]byte `cbor:"3,keyasint,omitempty"`

	// Metadata is the item metadata blob, empty for none.
	Metadata []byte `cbor:"4,keyasint,omitempty"`

	// OnlyAccount restricts who may submit the payload, empty for anyone.
	OnlyAccount string `cbor:"5,keyasint,omitempty"`

	// Deadline is the last block at which the payload is valid.
	Deadline uint64 `cbor:"6,keyasint"`

	// MintPrice is a big-endian amount the submitter pays the collection
	// owner, nil for a free mint.
	MintPrice []byte `cbor:"7,keyasint,omitempty"`
}

// AttributeData authorizes a third party to write a set of attributes on an
// existing item under a given namespace.
type AttributeData struct {
	// Collection is the target collection id.
	Collection uint32 `cbor:"1,keyasint"`

	// Item is the target item id.
	Item uint32 `cbor:"2,keyasint"`

	// Attributes are the key/value pairs to write.
	Attributes [][2][]byte `cbor:"3,keyasint,omitempty"`

	// NamespaceKind selects the attribute namespace: 0 collection owner,
	// 1 item owner, 2 account.
	NamespaceKind uint8 `cbor:"4,keyasint"`

	// NamespaceAccount is the delegate account for an account namespace.
	NamespaceAccount string `cbor:"5,keyasint,omitempty"`

	// OnlyAccount restricts who may submit the payload, empty for anyone.
	OnlyAccount string `cbor:"6,keyasint,omitempty"`

	// Deadline is the last block at which the payload is valid.
	Deadline uint64 `cbor:"7,keyasint"`
}
