package registry

import "github.com/holiman/uint256"

// Event is a record of one successful state transition. Every mutating call
// emits exactly one event on success.
type Event interface {
	Name() string
}

type Created struct {
	Collection CollectionID
	Creator    AccountID
	Owner      AccountID
}

func (Created) Name() string { return "Created" }

type Destroyed struct {
	Collection CollectionID
}

func (Destroyed) Name() string { return "Destroyed" }

type Issued struct {
	Collection CollectionID
	Item       ItemID
	Owner      AccountID
}

func (Issued) Name() string { return "Issued" }

type Transferred struct {
	Collection CollectionID
	Item       ItemID
	From       AccountID
	To         AccountID
}

func (Transferred) Name() string { return "Transferred" }

type Burned struct {
	Collection CollectionID
	Item       ItemID
	Owner      AccountID
}

func (Burned) Name() string { return "Burned" }

type TeamChanged struct {
	Collection CollectionID
	Issuer     *AccountID
	Admin      *AccountID
	Freezer    *AccountID
}

func (TeamChanged) Name() string { return "TeamChanged" }

type OwnershipAcceptanceChanged struct {
	Account         AccountID
	MaybeCollection *CollectionID
}

func (OwnershipAcceptanceChanged) Name() string { return "OwnershipAcceptanceChanged" }

type OwnerChanged struct {
	Collection CollectionID
	NewOwner   AccountID
}

func (OwnerChanged) Name() string { return "OwnerChanged" }

type CollectionMaxSupplySet struct {
	Collection CollectionID
	MaxSupply  uint32
}

func (CollectionMaxSupplySet) Name() string { return "CollectionMaxSupplySet" }

type CollectionMetadataSet struct {
	Collection CollectionID
	Data       []byte
}

func (CollectionMetadataSet) Name() string { return "CollectionMetadataSet" }

type CollectionMetadataCleared struct {
	Collection CollectionID
}

func (CollectionMetadataCleared) Name() string { return "CollectionMetadataCleared" }

type ItemMetadataSet struct {
	Collection CollectionID
	Item       ItemID
	Data       []byte
}

func (ItemMetadataSet) Name() string { return "ItemMetadataSet" }

type ItemMetadataCleared struct {
	Collection CollectionID
	Item       ItemID
}

func (ItemMetadataCleared) Name() string { return "ItemMetadataCleared" }

type AttributeSet struct {
	Collection CollectionID
	Item       *ItemID
	Namespace  AttributeNamespace
	Key        []byte
	Value      []byte
}

func (AttributeSet) Name() string { return "AttributeSet" }

type AttributeCleared struct {
	Collection CollectionID
	Item       *ItemID
	Namespace  AttributeNamespace
	Key        []byte
}

func (AttributeCleared) Name() string { return "AttributeCleared" }

type ItemAttributesApprovalAdded struct {
	Collection CollectionID
	Item       ItemID
	Delegate   AccountID
}

func (ItemAttributesApprovalAdded) Name() string { return "ItemAttributesApprovalAdded" }

type ItemAttributesApprovalRemoved struct {
	Collection CollectionID
	Item       ItemID
	Delegate   AccountID
}

func (ItemAttributesApprovalRemoved) Name() string { return "ItemAttributesApprovalRemoved" }

type TransferApproved struct {
	Collection CollectionID
	Item       ItemID
	Owner      AccountID
	Delegate   AccountID
	Deadline   *BlockNumber
}

func (TransferApproved) Name() string { return "TransferApproved" }

type ApprovalCancelled struct {
	Collection CollectionID
	Item       ItemID
	Owner      AccountID
	Delegate   AccountID
}

func (ApprovalCancelled) Name() string { return "ApprovalCancelled" }

type AllApprovalsCancelled struct {
	Collection CollectionID
	Item       ItemID
	Owner      AccountID
}

func (AllApprovalsCancelled) Name() string { return "AllApprovalsCancelled" }

type ItemTransferLocked struct {
	Collection CollectionID
	Item       ItemID
}

func (ItemTransferLocked) Name() string { return "ItemTransferLocked" }

type ItemTransferUnlocked struct {
	Collection CollectionID
	Item       ItemID
}

func (ItemTransferUnlocked) Name() string { return "ItemTransferUnlocked" }

type ItemPropertiesLocked struct {
	Collection     CollectionID
	Item           ItemID
	LockMetadata   bool
	LockAttributes bool
}

func (ItemPropertiesLocked) Name() string { return "ItemPropertiesLocked" }

type ItemPriceSet struct {
	Collection       CollectionID
	Item             ItemID
	Price            *uint256.Int
	WhitelistedBuyer *AccountID
}

func (ItemPriceSet) Name() string { return "ItemPriceSet" }

type ItemPriceRemoved struct {
	Collection CollectionID
	Item       ItemID
}

func (ItemPriceRemoved) Name() string { return "ItemPriceRemoved" }

type ItemBought struct {
	Collection CollectionID
	Item       ItemID
	Price      *uint256.Int
	Seller     AccountID
	Buyer      AccountID
}

func (ItemBought) Name() string { return "ItemBought" }

type SwapCreated struct {
	OfferedCollection CollectionID
	OfferedItem       ItemID
	DesiredCollection CollectionID
	DesiredItem       *ItemID
	Price             *PriceWithDirection
	Deadline          BlockNumber
}

func (SwapCreated) Name() string { return "SwapCreated" }

type SwapCancelled struct {
	OfferedCollection CollectionID
	OfferedItem       ItemID
}

func (SwapCancelled) Name() string { return "SwapCancelled" }

type SwapClaimed struct {
	SentCollection     CollectionID
	SentItem           ItemID
	SentItemOwner      AccountID
	ReceivedCollection CollectionID
	ReceivedItem       ItemID
	ReceivedItemOwner  AccountID
	Price              *PriceWithDirection
}

func (SwapClaimed) Name() string { return "SwapClaimed" }

type PreSignedAttributesSet struct {
	Collection CollectionID
	Item       ItemID
	Namespace  AttributeNamespace
}

func (PreSignedAttributesSet) Name() string { return "PreSignedAttributesSet" }
