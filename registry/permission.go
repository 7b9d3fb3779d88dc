package registry

// Permission resolution. Authority over a collection comes from exactly two
// sources: being the stored owner (or root) and holding a role bit in the
// team table. Every mutating call routes its checks through the helpers here
// so the rules stay in one place.

// hasRole reports whether account holds the given role in the collection's
// team table. The owner does not implicitly hold roles.
func (r *Registry) hasRole(collection CollectionID, account AccountID, role CollectionRole) bool {
	team, ok := r.state.roles[collection]
	if !ok {
		return false
	}
	return team[account].Has(role)
}

// isCollectionOwner reports whether origin owns the collection or is root.
func (r *Registry) isCollectionOwner(collection CollectionID, origin AccountID) bool {
	details, ok := r.state.collections[collection]
	if !ok {
		return false
	}
	return details.Owner == origin || r.isRoot(origin)
}

// checkCollectionOwner resolves the collection and verifies origin owns it.
func (r *Registry) checkCollectionOwner(collection CollectionID, origin AccountID) (*CollectionDetails, error) {
	details, ok := r.state.collections[collection]
	if !ok {
		return nil, ErrUnknownCollection
	}
	if details.Owner != origin && !r.isRoot(origin) {
		return nil, ErrNoPermission
	}
	return details, nil
}

// checkRole resolves the collection and verifies origin holds role.
func (r *Registry) checkRole(collection CollectionID, origin AccountID, role CollectionRole) (*CollectionDetails, error) {
	details, ok := r.state.collections[collection]
	if !ok {
		return nil, ErrUnknownCollection
	}
	if !r.hasRole(collection, origin, role) && !r.isRoot(origin) {
		return nil, ErrNoPermission
	}
	return details, nil
}

// canTransfer reports whether the item can move at all: the collection must
// not freeze every item and the item's own config must permit transfer.
func (r *Registry) canTransfer(key ItemKey) error {
	cfg, ok := r.state.collectionConfigs[key.Collection]
	if !ok {
		return ErrUnknownCollection
	}
	if cfg.Settings.Has(SettingItemsNonTransferable) {
		return ErrItemsNonTransferable
	}
	if itemCfg, ok := r.state.itemConfigs[key]; ok && !itemCfg.Transferable {
		return ErrItemLocked
	}
	return nil
}

// approvalValid reports whether delegate holds a live transfer approval on
// the item. Expired approvals stay in storage but grant nothing.
func (r *Registry) approvalValid(details *ItemDetails, delegate AccountID) bool {
	deadline, ok := details.Approvals[delegate]
	if !ok {
		return false
	}
	return deadline == nil || *deadline >= r.block
}

// attributeAuthority reports whether origin may write or clear attributes in
// the given namespace for an item (item nil means collection scope).
func (r *Registry) attributeAuthority(collection CollectionID, item *ItemID, namespace AttributeNamespace, origin AccountID) error {
	if r.isRoot(origin) {
		return nil
	}
	switch namespace.Kind {
	case NamespaceCollectionOwner:
		if !r.hasRole(collection, origin, RoleAdmin) && !r.isCollectionOwner(collection, origin) {
			return ErrNoPermission
		}
		return nil
	case NamespaceItemOwner:
		if item == nil {
			return ErrWrongNamespace
		}
		details, ok := r.state.items[ItemKey{Collection: collection, Item: *item}]
		if !ok {
			return ErrUnknownItem
		}
		if details.Owner != origin {
			return ErrNoPermission
		}
		return nil
	case NamespaceAccount:
		if origin != namespace.Account {
			return ErrNoPermission
		}
		if item == nil {
			return ErrWrongNamespace
		}
		key := ItemKey{Collection: collection, Item: *item}
		if _, ok := r.state.items[key]; !ok {
			return ErrUnknownItem
		}
		if _, ok := r.state.itemAttributeApprovals[key][origin]; !ok {
			return ErrNoPermission
		}
		return nil
	default:
		return ErrWrongNamespace
	}
}
