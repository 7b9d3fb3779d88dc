package registry

import "sort"

// Read-side queries. All return copies so callers cannot mutate registry
// state through the results.

// Collection returns a collection's stored details.
func (r *Registry) Collection(collection CollectionID) (CollectionDetails, bool) {
	d, ok := r.state.collections[collection]
	if !ok {
		return CollectionDetails{}, false
	}
	out := *d
	out.OwnerDeposit = cloneAmount(d.OwnerDeposit)
	return out, true
}

// CollectionConfigOf returns a collection's configuration.
func (r *Registry) CollectionConfigOf(collection CollectionID) (CollectionConfig, bool) {
	cfg, ok := r.state.collectionConfigs[collection]
	if !ok {
		return CollectionConfig{}, false
	}
	out := *cfg
	out.MintSettings.Price = cloneAmount(cfg.MintSettings.Price)
	out.MintSettings.StartBlock = cloneBlock(cfg.MintSettings.StartBlock)
	out.MintSettings.EndBlock = cloneBlock(cfg.MintSettings.EndBlock)
	return out, true
}

// CollectionRoleOf returns the role bitmask account holds in the collection.
func (r *Registry) CollectionRoleOf(collection CollectionID, account AccountID) (CollectionRole, bool) {
	role, ok := r.state.roles[collection][account]
	return role, ok
}

// CollectionMetadataOf returns the collection's metadata blob.
func (r *Registry) CollectionMetadataOf(collection CollectionID) (Metadata, bool) {
	m, ok := r.state.collectionMetadata[collection]
	if !ok {
		return Metadata{}, false
	}
	return *cloneMetadata(m), true
}

// Item returns an item's stored details.
func (r *Registry) Item(collection CollectionID, item ItemID) (ItemDetails, bool) {
	d, ok := r.state.items[ItemKey{Collection: collection, Item: item}]
	if !ok {
		return ItemDetails{}, false
	}
	out := *d
	out.Deposit = cloneAmount(d.Deposit)
	out.Approvals = make(map[AccountID]*BlockNumber, len(d.Approvals))
	for acct, deadline := range d.Approvals {
		out.Approvals[acct] = cloneBlock(deadline)
	}
	return out, true
}

// ItemConfigOf returns an item's flag set.
func (r *Registry) ItemConfigOf(collection CollectionID, item ItemID) (ItemConfig, bool) {
	cfg, ok := r.state.itemConfigs[ItemKey{Collection: collection, Item: item}]
	if !ok {
		return ItemConfig{}, false
	}
	return *cfg, true
}

// ItemMetadataOf returns an item's metadata blob.
func (r *Registry) ItemMetadataOf(collection CollectionID, item ItemID) (Metadata, bool) {
	m, ok := r.state.itemMetadata[ItemKey{Collection: collection, Item: item}]
	if !ok {
		return Metadata{}, false
	}
	return *cloneMetadata(m), true
}

// Attribute returns one attribute at collection scope (item nil) or item
// scope.
func (r *Registry) Attribute(collection CollectionID, item *ItemID, namespace AttributeNamespace, key string) (Attribute, bool) {
	a, ok := r.state.attributes[collection][attributeStorageKey(item, namespace, key)]
	if !ok {
		return Attribute{}, false
	}
	out := *a
	out.Value = append([]byte(nil), a.Value...)
	out.Deposit = cloneAmount(a.Deposit)
	return out, true
}

// CollectionAttributes enumerates the collection-scoped attributes, sorted
// by key.
func (r *Registry) CollectionAttributes(collection CollectionID) []AttributeEntry {
	return r.attributeEntries(collection, func(k attributeKey) bool { return !k.hasItem })
}

// ItemAttributes enumerates an item's attributes across all namespaces,
// sorted by key.
func (r *Registry) ItemAttributes(collection CollectionID, item ItemID) []AttributeEntry {
	return r.attributeEntries(collection, func(k attributeKey) bool { return k.hasItem && k.item == item })
}

func (r *Registry) attributeEntries(collection CollectionID, match func(attributeKey) bool) []AttributeEntry {
	var entries []AttributeEntry
	for k, a := range r.state.attributes[collection] {
		if !match(k) {
			continue
		}
		entry := AttributeEntry{
			Namespace: k.namespace,
			Key:       k.key,
			Attribute: Attribute{
				Value:     append([]byte(nil), a.Value...),
				Deposit:   cloneAmount(a.Deposit),
				Depositor: a.Depositor,
			},
		}
		if k.hasItem {
			entry.Item = ptr(k.item)
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Key != entries[j].Key {
			return entries[i].Key < entries[j].Key
		}
		return entries[i].Namespace.Kind < entries[j].Namespace.Kind
	})
	return entries
}

// ItemAttributesApprovalsOf returns the delegates approved to write
// attributes on the item, sorted.
func (r *Registry) ItemAttributesApprovalsOf(collection CollectionID, item ItemID) []AccountID {
	approvals := r.state.itemAttributeApprovals[ItemKey{Collection: collection, Item: item}]
	out := make([]AccountID, 0, len(approvals))
	for acct := range approvals {
		out = append(out, acct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ItemPriceOf returns an item's sale listing.
func (r *Registry) ItemPriceOf(collection CollectionID, item ItemID) (ItemPrice, bool) {
	p, ok := r.state.itemPrices[ItemKey{Collection: collection, Item: item}]
	if !ok {
		return ItemPrice{}, false
	}
	out := *p
	out.Amount = cloneAmount(p.Amount)
	out.WhitelistedBuyer = cloneAccount(p.WhitelistedBuyer)
	return out, true
}

// PendingSwapOf returns the swap offered on the item.
func (r *Registry) PendingSwapOf(collection CollectionID, item ItemID) (PendingSwap, bool) {
	s, ok := r.state.pendingSwaps[ItemKey{Collection: collection, Item: item}]
	if !ok {
		return PendingSwap{}, false
	}
	out := *s
	out.DesiredItem = cloneItemID(s.DesiredItem)
	if s.Price != nil {
		out.Price = &PriceWithDirection{Amount: cloneAmount(s.Price.Amount), Direction: s.Price.Direction}
	}
	return out, true
}

// OwnershipAcceptanceOf returns the collection account has agreed to own.
func (r *Registry) OwnershipAcceptanceOf(account AccountID) (CollectionID, bool) {
	id, ok := r.state.ownershipAcceptance[account]
	return id, ok
}

// NextCollectionID returns the id the next created collection will get.
func (r *Registry) NextCollectionID() CollectionID {
	return r.state.nextCollectionID
}

// AccountItems returns every item account owns, sorted by collection then
// item id.
func (r *Registry) AccountItems(account AccountID) []ItemKey {
	var keys []ItemKey
	for key, d := range r.state.items {
		if d.Owner == account {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Collection != keys[j].Collection {
			return keys[i].Collection < keys[j].Collection
		}
		return keys[i].Item < keys[j].Item
	})
	return keys
}

// AccountCollections returns every collection account owns, sorted.
func (r *Registry) AccountCollections(account AccountID) []CollectionID {
	var ids []CollectionID
	for id, d := range r.state.collections {
		if d.Owner == account {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Constants returns the registry's configured constants.
func (r *Registry) Constants() Config {
	out := r.cfg
	out.CollectionDeposit = cloneAmount(r.cfg.CollectionDeposit)
	out.ItemDeposit = cloneAmount(r.cfg.ItemDeposit)
	out.MetadataDepositBase = cloneAmount(r.cfg.MetadataDepositBase)
	out.AttributeDepositBase = cloneAmount(r.cfg.AttributeDepositBase)
	out.DepositPerByte = cloneAmount(r.cfg.DepositPerByte)
	return out
}
