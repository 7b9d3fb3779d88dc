package registry

import "github.com/holiman/uint256"

// metadataDeposit computes the reserve a metadata blob requires.
func (r *Registry) metadataDeposit(data []byte) *uint256.Int {
	perByte := new(uint256.Int).Mul(r.cfg.DepositPerByte, uint256.NewInt(uint64(len(data))))
	return perByte.Add(perByte, r.cfg.MetadataDepositBase)
}

// canManageMetadata gates metadata writes: collection owner or Admin role.
func (r *Registry) canManageMetadata(collection CollectionID, origin AccountID) error {
	if _, ok := r.state.collections[collection]; !ok {
		return ErrUnknownCollection
	}
	if r.isRoot(origin) || r.isCollectionOwner(collection, origin) || r.hasRole(collection, origin, RoleAdmin) {
		return nil
	}
	return ErrNoPermission
}

// SetCollectionMetadata stores the collection's metadata blob, reserving a
// size-dependent deposit from origin. Re-setting releases the previous
// deposit to its depositor first.
func (r *Registry) SetCollectionMetadata(origin AccountID, collection CollectionID, data []byte) error {
	if err := r.canManageMetadata(collection, origin); err != nil {
		return err
	}
	if r.state.collectionConfigs[collection].Settings.Has(SettingLockedMetadata) && !r.isRoot(origin) {
		return ErrMetadataLocked
	}
	if len(data) > r.cfg.StringLimit {
		return ErrDataTooLong
	}

	deposit := r.metadataDeposit(data)
	if err := r.ledger.Reserve(string(origin), deposit); err != nil {
		return err
	}
	if old, ok := r.state.collectionMetadata[collection]; ok {
		r.ledger.Unreserve(string(old.Depositor), old.Deposit)
	}
	r.state.collectionMetadata[collection] = &Metadata{
		Data:      append([]byte(nil), data...),
		Deposit:   deposit,
		Depositor: origin,
	}
	r.emit(CollectionMetadataSet{Collection: collection, Data: append([]byte(nil), data...)})
	return nil
}

// ClearCollectionMetadata removes the collection's metadata and releases its
// deposit.
func (r *Registry) ClearCollectionMetadata(origin AccountID, collection CollectionID) error {
	if err := r.canManageMetadata(collection, origin); err != nil {
		return err
	}
	if r.state.collectionConfigs[collection].Settings.Has(SettingLockedMetadata) && !r.isRoot(origin) {
		return ErrMetadataLocked
	}
	m, ok := r.state.collectionMetadata[collection]
	if !ok {
		return ErrUnknownMetadata
	}
	r.ledger.Unreserve(string(m.Depositor), m.Deposit)
	delete(r.state.collectionMetadata, collection)
	r.emit(CollectionMetadataCleared{Collection: collection})
	return nil
}

// SetMetadata stores an item's metadata blob. Both the collection's metadata
// lock and the item's own metadata lock must be open.
func (r *Registry) SetMetadata(origin AccountID, collection CollectionID, item ItemID, data []byte) error {
	if err := r.canManageMetadata(collection, origin); err != nil {
		return err
	}
	if err := r.itemMetadataUnlocked(collection, item); err != nil && !r.isRoot(origin) {
		return err
	}
	if len(data) > r.cfg.StringLimit {
		return ErrDataTooLong
	}
	key := ItemKey{Collection: collection, Item: item}
	if _, ok := r.state.items[key]; !ok {
		return ErrUnknownItem
	}

	deposit := r.metadataDeposit(data)
	if err := r.ledger.Reserve(string(origin), deposit); err != nil {
		return err
	}
	old, existed := r.state.itemMetadata[key]
	if existed {
		r.ledger.Unreserve(string(old.Depositor), old.Deposit)
	}
	r.state.itemMetadata[key] = &Metadata{
		Data:      append([]byte(nil), data...),
		Deposit:   deposit,
		Depositor: origin,
	}
	if !existed {
		r.state.collections[collection].ItemMetadatas++
	}
	r.emit(ItemMetadataSet{Collection: collection, Item: item, Data: append([]byte(nil), data...)})
	return nil
}

// ClearMetadata removes an item's metadata and releases its deposit. The
// item itself may already be burned; its metadata outlives it until cleared.
func (r *Registry) ClearMetadata(origin AccountID, collection CollectionID, item ItemID) error {
	if err := r.canManageMetadata(collection, origin); err != nil {
		return err
	}
	if err := r.itemMetadataUnlocked(collection, item); err != nil && !r.isRoot(origin) {
		return err
	}
	key := ItemKey{Collection: collection, Item: item}
	m, ok := r.state.itemMetadata[key]
	if !ok {
		return ErrUnknownMetadata
	}
	r.ledger.Unreserve(string(m.Depositor), m.Deposit)
	delete(r.state.itemMetadata, key)
	r.state.collections[collection].ItemMetadatas--
	r.emit(ItemMetadataCleared{Collection: collection, Item: item})
	return nil
}

func (r *Registry) itemMetadataUnlocked(collection CollectionID, item ItemID) error {
	if r.state.collectionConfigs[collection].Settings.Has(SettingLockedMetadata) {
		return ErrMetadataLocked
	}
	if cfg, ok := r.state.itemConfigs[ItemKey{Collection: collection, Item: item}]; ok && cfg.MetadataLocked {
		return ErrMetadataLocked
	}
	return nil
}
