package registry

import (
	"github.com/holiman/uint256"

	"github.com/uniques-xyz/go-uniques/ledger"
)

// Mint issues a new item into a collection. Who may mint depends on the
// collection's mint type: Issuer restricts to the Issuer role, Public is
// open within the mint window, HolderOf additionally demands a witness
// naming an item the minter owns in the qualifying collection. A configured
// mint price must be acknowledged in the witness and is paid to the
// collection owner; the item deposit is reserved from the minter.
func (r *Registry) Mint(origin AccountID, collection CollectionID, item ItemID, mintTo AccountID, witness *MintWitness) error {
	details, ok := r.state.collections[collection]
	if !ok {
		return ErrUnknownCollection
	}
	cfg := r.state.collectionConfigs[collection]
	key := ItemKey{Collection: collection, Item: item}
	if _, exists := r.state.items[key]; exists {
		return ErrAlreadyExists
	}
	if cfg.MaxSupply != 0 && details.Items >= cfg.MaxSupply {
		return ErrMaxSupplyReached
	}

	var price *uint256.Int
	switch cfg.MintSettings.MintType.Kind {
	case MintIssuer:
		if !r.hasRole(collection, origin, RoleIssuer) && !r.isRoot(origin) {
			return ErrNoPermission
		}
	case MintPublic:
		if err := r.checkMintWindow(cfg); err != nil {
			return err
		}
		price = cfg.MintSettings.Price
	case MintHolderOf:
		if err := r.checkMintWindow(cfg); err != nil {
			return err
		}
		if witness == nil || witness.OwnedItem == nil {
			return ErrWitnessRequired
		}
		ownedKey := ItemKey{Collection: cfg.MintSettings.MintType.Collection, Item: *witness.OwnedItem}
		owned, ok := r.state.items[ownedKey]
		if !ok || owned.Owner != origin {
			return ErrBadWitness
		}
		price = cfg.MintSettings.Price
	}
	if price != nil {
		if witness == nil {
			return ErrWitnessRequired
		}
		if witness.MintPrice == nil || !witness.MintPrice.Eq(price) {
			return ErrBadWitness
		}
	}

	deposit := new(uint256.Int).Set(r.cfg.ItemDeposit)
	needed := new(uint256.Int).Set(deposit)
	if price != nil {
		needed.Add(needed, price)
	}
	if r.ledger.Free(string(origin)).Lt(needed) {
		return ledger.ErrInsufficientBalance
	}
	if price != nil {
		if err := r.ledger.Transfer(string(origin), string(details.Owner), price); err != nil {
			return err
		}
	}
	if err := r.ledger.Reserve(string(origin), deposit); err != nil {
		return err
	}

	r.state.items[key] = &ItemDetails{
		Owner:     mintTo,
		Deposit:   deposit,
		Depositor: origin,
		Approvals: make(map[AccountID]*BlockNumber),
	}
	r.state.itemConfigs[key] = ptr(itemConfigFromSettings(cfg.MintSettings.DefaultItemSettings))
	details.Items++
	details.ItemConfigs++

	r.log.Info().Uint32("collection", uint32(collection)).Uint32("item", uint32(item)).
		Str("owner", string(mintTo)).Msg("item minted")
	r.emit(Issued{Collection: collection, Item: item, Owner: mintTo})
	return nil
}

func (r *Registry) checkMintWindow(cfg *CollectionConfig) error {
	if start := cfg.MintSettings.StartBlock; start != nil && r.block < *start {
		return ErrMintNotStarted
	}
	if end := cfg.MintSettings.EndBlock; end != nil && r.block > *end {
		return ErrMintEnded
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

// Burn destroys an item the origin owns. The item's deposit is released to
// whoever paid it and the item's listing, approvals and pending swap vanish
// with it. Metadata, attributes and the item config survive the burn and
// still count toward the collection's destroy witness.
func (r *Registry) Burn(origin AccountID, collection CollectionID, item ItemID) error {
	key := ItemKey{Collection: collection, Item: item}
	details, ok := r.state.items[key]
	if !ok {
		return ErrUnknownItem
	}
	if details.Owner != origin && !r.isRoot(origin) {
		return ErrNoPermission
	}

	r.ledger.Unreserve(string(details.Depositor), details.Deposit)
	delete(r.state.items, key)
	delete(r.state.itemPrices, key)
	delete(r.state.pendingSwaps, key)
	r.state.collections[collection].Items--

	r.log.Info().Uint32("collection", uint32(collection)).Uint32("item", uint32(item)).Msg("item burned")
	r.emit(Burned{Collection: collection, Item: item, Owner: details.Owner})
	return nil
}

// Transfer moves an item to a new owner. The caller must be the item's owner
// or hold a live transfer approval, and both the collection and the item
// must permit transfer. Any listing and all approvals are cleared.
func (r *Registry) Transfer(origin AccountID, collection CollectionID, item ItemID, dest AccountID) error {
	key := ItemKey{Collection: collection, Item: item}
	details, ok := r.state.items[key]
	if !ok {
		return ErrUnknownItem
	}
	if err := r.canTransfer(key); err != nil {
		return err
	}
	if details.Owner != origin && !r.approvalValid(details, origin) && !r.isRoot(origin) {
		return ErrNoPermission
	}

	from := details.Owner
	details.Owner = dest
	details.Approvals = make(map[AccountID]*BlockNumber)
	delete(r.state.itemPrices, key)

	r.log.Info().Uint32("collection", uint32(collection)).Uint32("item", uint32(item)).
		Str("from", string(from)).Str("to", string(dest)).Msg("item transferred")
	r.emit(Transferred{Collection: collection, Item: item, From: from, To: dest})
	return nil
}

// ApproveTransfer lets delegate transfer the item on the owner's behalf,
// optionally only until current block + duration.
func (r *Registry) ApproveTransfer(origin AccountID, collection CollectionID, item ItemID, delegate AccountID, duration *BlockNumber) error {
	key := ItemKey{Collection: collection, Item: item}
	details, ok := r.state.items[key]
	if !ok {
		return ErrUnknownItem
	}
	if details.Owner != origin && !r.isRoot(origin) {
		return ErrNoPermission
	}
	if err := r.canTransfer(key); err != nil {
		return err
	}
	if _, exists := details.Approvals[delegate]; !exists && len(details.Approvals) >= r.cfg.ApprovalsLimit {
		return ErrReachedApprovalLimit
	}

	var deadline *BlockNumber
	if duration != nil {
		d := r.block + *duration
		deadline = &d
	}
	details.Approvals[delegate] = deadline
	r.emit(TransferApproved{Collection: collection, Item: item, Owner: details.Owner, Delegate: delegate, Deadline: cloneBlock(deadline)})
	return nil
}

// CancelApproval revokes a single transfer approval. Anyone may clear an
// approval that has already expired; a live one only the owner may revoke.
func (r *Registry) CancelApproval(origin AccountID, collection CollectionID, item ItemID, delegate AccountID) error {
	key := ItemKey{Collection: collection, Item: item}
	details, ok := r.state.items[key]
	if !ok {
		return ErrUnknownItem
	}
	deadline, exists := details.Approvals[delegate]
	if !exists {
		return ErrUnknownApproval
	}
	if details.Owner != origin && !r.isRoot(origin) {
		expired := deadline != nil && *deadline < r.block
		if !expired {
			return ErrNoPermission
		}
	}
	delete(details.Approvals, delegate)
	r.emit(ApprovalCancelled{Collection: collection, Item: item, Owner: details.Owner, Delegate: delegate})
	return nil
}

// ClearAllTransferApprovals drops every transfer approval on the item.
func (r *Registry) ClearAllTransferApprovals(origin AccountID, collection CollectionID, item ItemID) error {
	key := ItemKey{Collection: collection, Item: item}
	details, ok := r.state.items[key]
	if !ok {
		return ErrUnknownItem
	}
	if details.Owner != origin && !r.isRoot(origin) {
		return ErrNoPermission
	}
	details.Approvals = make(map[AccountID]*BlockNumber)
	r.emit(AllApprovalsCancelled{Collection: collection, Item: item, Owner: details.Owner})
	return nil
}

// LockItemTransfer marks the item non-transferable. Requires the Freezer
// role.
func (r *Registry) LockItemTransfer(origin AccountID, collection CollectionID, item ItemID) error {
	cfg, err := r.freezerItemConfig(origin, collection, item)
	if err != nil {
		return err
	}
	cfg.Transferable = false
	r.emit(ItemTransferLocked{Collection: collection, Item: item})
	return nil
}

// UnlockItemTransfer makes the item transferable again. Requires the Freezer
// role.
func (r *Registry) UnlockItemTransfer(origin AccountID, collection CollectionID, item ItemID) error {
	cfg, err := r.freezerItemConfig(origin, collection, item)
	if err != nil {
		return err
	}
	cfg.Transferable = true
	r.emit(ItemTransferUnlocked{Collection: collection, Item: item})
	return nil
}

func (r *Registry) freezerItemConfig(origin AccountID, collection CollectionID, item ItemID) (*ItemConfig, error) {
	if _, err := r.checkRole(collection, origin, RoleFreezer); err != nil {
		return nil, err
	}
	key := ItemKey{Collection: collection, Item: item}
	cfg, ok := r.state.itemConfigs[key]
	if !ok {
		return nil, ErrUnknownItem
	}
	return cfg, nil
}

// LockItemProperties permanently locks the item's metadata, attributes or
// both. The flags are monotone: a lock can only ever be added, and locking
// an already locked property succeeds without effect. Requires the Admin
// role.
func (r *Registry) LockItemProperties(origin AccountID, collection CollectionID, item ItemID, lockMetadata, lockAttributes bool) error {
	if _, err := r.checkRole(collection, origin, RoleAdmin); err != nil {
		return err
	}
	key := ItemKey{Collection: collection, Item: item}
	cfg, ok := r.state.itemConfigs[key]
	if !ok {
		return ErrUnknownItem
	}
	cfg.MetadataLocked = cfg.MetadataLocked || lockMetadata
	cfg.AttributesLocked = cfg.AttributesLocked || lockAttributes
	r.emit(ItemPropertiesLocked{Collection: collection, Item: item, LockMetadata: lockMetadata, LockAttributes: lockAttributes})
	return nil
}
