// Package registry implements the state-transition logic of a non-fungible
// asset registry: collections of unique items with ownership, metadata,
// attributes, storage deposits and peer-to-peer trading. Every call applies
// atomically and in full isolation; a call either commits all of its state
// changes and emits one event, or fails with a typed reason and changes
// nothing.
package registry

import "github.com/holiman/uint256"

// AccountID identifies an account.
type AccountID string

// CollectionID identifies a collection. Ids are sequential and never reused.
type CollectionID uint32

// ItemID identifies an item within a collection.
type ItemID uint32

// BlockNumber is the registry's clock, advanced by the caller.
type BlockNumber uint64

// CollectionSetting is a bitmask fixed at collection creation. A set bit
// locks the corresponding capability; bit 0 instead marks all items in the
// collection non-transferable.
type CollectionSetting uint64

const (
	SettingItemsNonTransferable CollectionSetting = 1 << iota
	SettingLockedMetadata
	SettingLockedAttributes
	SettingLockedMaxSupply
)

// Has reports whether all bits of flag are set.
func (s CollectionSetting) Has(flag CollectionSetting) bool {
	return s&flag == flag
}

// CollectionRole is a role bitmask held by a team member. The collection
// owner is implicit and never stored as a role.
type CollectionRole uint8

const (
	RoleIssuer  CollectionRole = 1 << iota // may mint under Issuer mint type
	RoleFreezer                            // may lock and unlock item transfer
	RoleAdmin                              // may manage metadata, attributes and property locks
)

// RoleFull is granted to the configured admin account at creation.
const RoleFull = RoleIssuer | RoleFreezer | RoleAdmin

// Has reports whether the bitmask includes role.
func (r CollectionRole) Has(role CollectionRole) bool {
	return r&role == role
}

// ItemSetting encodes initial per-item flags in MintSettings. A set bit
// activates the corresponding restriction on newly minted items.
type ItemSetting uint64

const (
	ItemSettingNonTransferable ItemSetting = 1 << iota
	ItemSettingLockedAttributes
	ItemSettingLockedMetadata
)

// ItemConfig holds per-item flags. Transferable toggles reversibly under the
// Freezer role. The two property locks are monotone: once set they never
// clear for the item's lifetime, and the lock setter only ever ORs them in.
type ItemConfig struct {
	Transferable     bool
	AttributesLocked bool
	MetadataLocked   bool
}

func itemConfigFromSettings(s ItemSetting) ItemConfig {
	return ItemConfig{
		Transferable:     s&ItemSettingNonTransferable == 0,
		AttributesLocked: s&ItemSettingLockedAttributes != 0,
		MetadataLocked:   s&ItemSettingLockedMetadata != 0,
	}
}

// MintKind selects who may mint into a collection.
type MintKind uint8

const (
	// MintIssuer restricts minting to accounts holding the Issuer role.
	MintIssuer MintKind = iota
	// MintPublic lets anyone mint, subject to window and price checks.
	MintPublic
	// MintHolderOf lets holders of an item in another collection mint,
	// proven by a witness.
	MintHolderOf
)

// MintType pairs a mint kind with the qualifying collection for HolderOf.
type MintType struct {
	Kind       MintKind
	Collection CollectionID // qualifying collection, HolderOf only
}

// MintTypeIssuer returns the Issuer mint type.
func MintTypeIssuer() MintType { return MintType{Kind: MintIssuer} }

// MintTypePublic returns the Public mint type.
func MintTypePublic() MintType { return MintType{Kind: MintPublic} }

// MintTypeHolderOf returns a HolderOf mint type qualified by collection.
func MintTypeHolderOf(collection CollectionID) MintType {
	return MintType{Kind: MintHolderOf, Collection: collection}
}

// MintSettings configures how items enter a collection.
type MintSettings struct {
	MintType MintType

	// Price, when set, is transferred from the minter to the collection
	// owner on every Public or HolderOf mint.
	Price *uint256.Int

	// StartBlock and EndBlock bound the mint window, nil for unbounded.
	StartBlock *BlockNumber
	EndBlock   *BlockNumber

	// DefaultItemSettings seeds the ItemConfig of newly minted items.
	DefaultItemSettings ItemSetting
}

// CollectionConfig is the configuration stored verbatim at creation.
// Settings are immutable afterwards; MaxSupply may be set later while
// unlocked.
type CollectionConfig struct {
	Settings     CollectionSetting
	MaxSupply    uint32 // 0 means unlimited
	MintSettings MintSettings
}

// CollectionDetails is the stored record of a collection.
type CollectionDetails struct {
	Owner        AccountID
	OwnerDeposit *uint256.Int

	// Live entry counts, checked against the destroy witness.
	Items         uint32
	ItemMetadatas uint32
	ItemConfigs   uint32
	Attributes    uint32
}

// ItemDetails is the stored record of an item.
type ItemDetails struct {
	Owner     AccountID
	Deposit   *uint256.Int
	Depositor AccountID

	// Approvals maps transfer delegates to an optional expiry block.
	Approvals map[AccountID]*BlockNumber
}

// Metadata is a stored metadata blob and the deposit backing it.
type Metadata struct {
	Data      []byte
	Deposit   *uint256.Int
	Depositor AccountID
}

// NamespaceKind selects the authorization domain of an attribute.
type NamespaceKind uint8

const (
	NamespaceCollectionOwner NamespaceKind = iota
	NamespaceItemOwner
	NamespaceAccount
)

// AttributeNamespace is the authorization domain an attribute key lives in.
type AttributeNamespace struct {
	Kind    NamespaceKind
	Account AccountID // delegate, Account kind only
}

// CollectionOwnerNamespace returns the collection-owner namespace.
func CollectionOwnerNamespace() AttributeNamespace {
	return AttributeNamespace{Kind: NamespaceCollectionOwner}
}

// ItemOwnerNamespace returns the item-owner namespace.
func ItemOwnerNamespace() AttributeNamespace {
	return AttributeNamespace{Kind: NamespaceItemOwner}
}

// AccountNamespace returns the namespace delegated to account.
func AccountNamespace(account AccountID) AttributeNamespace {
	return AttributeNamespace{Kind: NamespaceAccount, Account: account}
}

// Attribute is a stored attribute value and the deposit backing it.
type Attribute struct {
	Value     []byte
	Deposit   *uint256.Int
	Depositor AccountID
}

// AttributeEntry is one row of an attribute enumeration.
type AttributeEntry struct {
	Item      *ItemID // nil for collection scope
	Namespace AttributeNamespace
	Key       string
	Attribute Attribute
}

// PriceDirection states who pays the optional swap surcharge. The direction
// is the swap creator's: Send means the creator pays the amount to the
// claimer on claim, Receive means the creator is paid by the claimer.
type PriceDirection uint8

const (
	DirectionSend PriceDirection = iota
	DirectionReceive
)

// PriceWithDirection is a swap surcharge.
type PriceWithDirection struct {
	Amount    *uint256.Int
	Direction PriceDirection
}

// PendingSwap is an outstanding swap offer, keyed by the offered item.
type PendingSwap struct {
	DesiredCollection CollectionID
	DesiredItem       *ItemID // nil accepts any item of the collection
	Price             *PriceWithDirection
	Deadline          BlockNumber
}

// ItemPrice is a sale listing.
type ItemPrice struct {
	Amount *uint256.Int
	// WhitelistedBuyer, when set, is the only account allowed to buy.
	WhitelistedBuyer *AccountID
}

// MintWitness carries caller-supplied proof data for HolderOf and priced
// mints.
type MintWitness struct {
	// OwnedItem names an item the caller owns in the qualifying
	// collection, HolderOf only.
	OwnedItem *ItemID

	// MintPrice acknowledges the configured mint price.
	MintPrice *uint256.Int
}

// DestroyWitness states the live entry counts a destroy caller expects; the
// registry validates them against stored truth.
type DestroyWitness struct {
	ItemMetadatas uint32
	ItemConfigs   uint32
	Attributes    uint32
}

// ItemKey addresses an item across collections.
type ItemKey struct {
	Collection CollectionID
	Item       ItemID
}

// Config holds the registry's constants.
type Config struct {
	// Deposit amounts: fixed bases plus a linear per-byte rate on
	// metadata and attribute payloads.
	CollectionDeposit    *uint256.Int
	ItemDeposit          *uint256.Int
	MetadataDepositBase  *uint256.Int
	AttributeDepositBase *uint256.Int
	DepositPerByte       *uint256.Int

	// Bounds
	ApprovalsLimit               int
	ItemAttributesApprovalsLimit int
	KeyLimit                     int
	ValueLimit                   int
	StringLimit                  int
	MaxDeadlineDuration          BlockNumber

	// Root, when non-empty, bypasses owner checks.
	Root AccountID
}

// DefaultConfig returns the constants used in tests and simulation.
func DefaultConfig() Config {
	return Config{
		CollectionDeposit:            uint256.NewInt(10_000_000_000),
		ItemDeposit:                  uint256.NewInt(1_000_000_000),
		MetadataDepositBase:          uint256.NewInt(100_000_000),
		AttributeDepositBase:         uint256.NewInt(100_000_000),
		DepositPerByte:               uint256.NewInt(1_000_000),
		ApprovalsLimit:               20,
		ItemAttributesApprovalsLimit: 30,
		KeyLimit:                     64,
		ValueLimit:                   256,
		StringLimit:                  256,
		MaxDeadlineDuration:          12 * 30 * 24 * 600, // roughly a year of 6s blocks
	}
}
