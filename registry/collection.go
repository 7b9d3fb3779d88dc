package registry

import "github.com/holiman/uint256"

// Create registers a new collection owned by origin. The collection deposit
// is reserved from origin and the configured admin account receives the full
// role set.
func (r *Registry) Create(origin, admin AccountID, config CollectionConfig) (CollectionID, error) {
	deposit := new(uint256.Int).Set(r.cfg.CollectionDeposit)
	if err := r.ledger.Reserve(string(origin), deposit); err != nil {
		return 0, err
	}
	return r.createCollection(origin, origin, admin, config, deposit), nil
}

// ForceCreate registers a collection on behalf of owner without reserving a
// deposit. Only root may call it.
func (r *Registry) ForceCreate(origin, owner AccountID, config CollectionConfig) (CollectionID, error) {
	if !r.isRoot(origin) {
		return 0, ErrNoPermission
	}
	return r.createCollection(origin, owner, owner, config, new(uint256.Int)), nil
}

func (r *Registry) createCollection(creator, owner, admin AccountID, config CollectionConfig, deposit *uint256.Int) CollectionID {
	id := r.state.nextCollectionID
	r.state.nextCollectionID++

	cfg := config
	cfg.MintSettings.Price = cloneAmount(config.MintSettings.Price)
	cfg.MintSettings.StartBlock = cloneBlock(config.MintSettings.StartBlock)
	cfg.MintSettings.EndBlock = cloneBlock(config.MintSettings.EndBlock)

	r.state.collections[id] = &CollectionDetails{Owner: owner, OwnerDeposit: deposit}
	r.state.collectionConfigs[id] = &cfg
	r.state.roles[id] = map[AccountID]CollectionRole{admin: RoleFull}

	r.log.Info().Uint32("collection", uint32(id)).Str("owner", string(owner)).Msg("collection created")
	r.emit(Created{Collection: id, Creator: creator, Owner: owner})
	return id
}

// Destroy removes an empty collection. The witness must state the exact live
// counts of item metadata, item configs and attributes; all storage deposits
// those entries carry are released to their depositors along with the
// owner's collection deposit.
func (r *Registry) Destroy(origin AccountID, collection CollectionID, witness DestroyWitness) error {
	details, err := r.checkCollectionOwner(collection, origin)
	if err != nil {
		return err
	}
	if details.Items != 0 {
		return ErrCollectionNotEmpty
	}
	if witness.ItemMetadatas != details.ItemMetadatas ||
		witness.ItemConfigs != details.ItemConfigs ||
		witness.Attributes != details.Attributes {
		return ErrBadWitness
	}

	for key, m := range r.state.itemMetadata {
		if key.Collection != collection {
			continue
		}
		r.ledger.Unreserve(string(m.Depositor), m.Deposit)
		delete(r.state.itemMetadata, key)
	}
	for key := range r.state.itemConfigs {
		if key.Collection == collection {
			delete(r.state.itemConfigs, key)
		}
	}
	for _, a := range r.state.attributes[collection] {
		r.ledger.Unreserve(string(a.Depositor), a.Deposit)
	}
	delete(r.state.attributes, collection)
	for key := range r.state.itemAttributeApprovals {
		if key.Collection == collection {
			delete(r.state.itemAttributeApprovals, key)
		}
	}
	if m, ok := r.state.collectionMetadata[collection]; ok {
		r.ledger.Unreserve(string(m.Depositor), m.Deposit)
		delete(r.state.collectionMetadata, collection)
	}
	r.ledger.Unreserve(string(details.Owner), details.OwnerDeposit)

	delete(r.state.collections, collection)
	delete(r.state.collectionConfigs, collection)
	delete(r.state.roles, collection)
	for acct, id := range r.state.ownershipAcceptance {
		if id == collection {
			delete(r.state.ownershipAcceptance, acct)
		}
	}

	r.log.Info().Uint32("collection", uint32(collection)).Msg("collection destroyed")
	r.emit(Destroyed{Collection: collection})
	return nil
}

// SetTeam replaces the collection's entire role table. Passing nil for a
// role leaves that role unassigned.
func (r *Registry) SetTeam(origin AccountID, collection CollectionID, issuer, admin, freezer *AccountID) error {
	if _, err := r.checkCollectionOwner(collection, origin); err != nil {
		return err
	}
	team := make(map[AccountID]CollectionRole)
	if issuer != nil {
		team[*issuer] |= RoleIssuer
	}
	if admin != nil {
		team[*admin] |= RoleAdmin
	}
	if freezer != nil {
		team[*freezer] |= RoleFreezer
	}
	r.state.roles[collection] = team
	r.emit(TeamChanged{
		Collection: collection,
		Issuer:     cloneAccount(issuer),
		Admin:      cloneAccount(admin),
		Freezer:    cloneAccount(freezer),
	})
	return nil
}

// SetAcceptOwnership records that origin agrees to take ownership of the
// given collection, or withdraws any standing agreement when collection is
// nil. Transfers of ownership require this prior consent.
func (r *Registry) SetAcceptOwnership(origin AccountID, collection *CollectionID) error {
	if collection == nil {
		delete(r.state.ownershipAcceptance, origin)
		r.emit(OwnershipAcceptanceChanged{Account: origin})
		return nil
	}
	if _, ok := r.state.collections[*collection]; !ok {
		return ErrUnknownCollection
	}
	id := *collection
	r.state.ownershipAcceptance[origin] = id
	r.emit(OwnershipAcceptanceChanged{Account: origin, MaybeCollection: &id})
	return nil
}

// TransferOwnership moves the collection to newOwner, who must have accepted
// beforehand. Reserved deposits held by the old owner move with it.
func (r *Registry) TransferOwnership(origin AccountID, collection CollectionID, newOwner AccountID) error {
	details, err := r.checkCollectionOwner(collection, origin)
	if err != nil {
		return err
	}
	if details.Owner == newOwner {
		return nil
	}
	if accepted, ok := r.state.ownershipAcceptance[newOwner]; !ok || accepted != collection {
		return ErrUnaccepted
	}

	moved := new(uint256.Int).Set(details.OwnerDeposit)
	if m, ok := r.state.collectionMetadata[collection]; ok && m.Depositor == details.Owner {
		moved.Add(moved, m.Deposit)
		m.Depositor = newOwner
	}
	if err := r.ledger.MoveReserved(string(details.Owner), string(newOwner), moved); err != nil {
		return err
	}

	details.Owner = newOwner
	delete(r.state.ownershipAcceptance, newOwner)
	r.log.Info().Uint32("collection", uint32(collection)).Str("owner", string(newOwner)).Msg("collection ownership transferred")
	r.emit(OwnerChanged{Collection: collection, NewOwner: newOwner})
	return nil
}

// SetCollectionMaxSupply caps how many items the collection may ever hold.
// The cap cannot drop below the live item count and cannot change once the
// collection locked it at creation.
func (r *Registry) SetCollectionMaxSupply(origin AccountID, collection CollectionID, maxSupply uint32) error {
	details, err := r.checkCollectionOwner(collection, origin)
	if err != nil {
		return err
	}
	cfg := r.state.collectionConfigs[collection]
	if cfg.Settings.Has(SettingLockedMaxSupply) {
		return ErrMaxSupplyLocked
	}
	if maxSupply != 0 && maxSupply < details.Items {
		return ErrMaxSupplyTooSmall
	}
	cfg.MaxSupply = maxSupply
	r.emit(CollectionMaxSupplySet{Collection: collection, MaxSupply: maxSupply})
	return nil
}
