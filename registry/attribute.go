package registry

import "github.com/holiman/uint256"

// attributeDeposit computes the reserve an attribute entry requires.
func (r *Registry) attributeDeposit(key string, value []byte) *uint256.Int {
	perByte := new(uint256.Int).Mul(r.cfg.DepositPerByte, uint256.NewInt(uint64(len(key)+len(value))))
	return perByte.Add(perByte, r.cfg.AttributeDepositBase)
}

// SetAttribute writes a key/value attribute at collection scope (item nil)
// or item scope. Authority depends on the namespace: the collection-owner
// namespace needs the owner or Admin role and honors the attribute locks,
// the item-owner namespace needs the item's owner, and an account namespace
// needs the named delegate holding an attribute approval on the item.
// Deposits follow size; re-setting a key releases the previous deposit.
func (r *Registry) SetAttribute(origin AccountID, collection CollectionID, item *ItemID, namespace AttributeNamespace, key string, value []byte) error {
	if _, ok := r.state.collections[collection]; !ok {
		return ErrUnknownCollection
	}
	if len(key) > r.cfg.KeyLimit || len(value) > r.cfg.ValueLimit {
		return ErrDataTooLong
	}
	if err := r.attributeAuthority(collection, item, namespace, origin); err != nil {
		return err
	}
	if namespace.Kind == NamespaceCollectionOwner && !r.isRoot(origin) {
		if err := r.attributesUnlocked(collection, item); err != nil {
			return err
		}
	}
	if item != nil && namespace.Kind == NamespaceCollectionOwner {
		if _, ok := r.state.items[ItemKey{Collection: collection, Item: *item}]; !ok {
			return ErrUnknownItem
		}
	}

	deposit := r.attributeDeposit(key, value)
	if err := r.ledger.Reserve(string(origin), deposit); err != nil {
		return err
	}
	attrs := r.state.collectionAttributes(collection)
	storageKey := attributeStorageKey(item, namespace, key)
	old, existed := attrs[storageKey]
	if existed {
		r.ledger.Unreserve(string(old.Depositor), old.Deposit)
	}
	attrs[storageKey] = &Attribute{
		Value:     append([]byte(nil), value...),
		Deposit:   deposit,
		Depositor: origin,
	}
	if !existed {
		r.state.collections[collection].Attributes++
	}
	r.emit(AttributeSet{
		Collection: collection,
		Item:       cloneItemID(item),
		Namespace:  namespace,
		Key:        []byte(key),
		Value:      append([]byte(nil), value...),
	})
	return nil
}

// ClearAttribute removes an attribute and releases its deposit to whoever
// paid it.
func (r *Registry) ClearAttribute(origin AccountID, collection CollectionID, item *ItemID, namespace AttributeNamespace, key string) error {
	if _, ok := r.state.collections[collection]; !ok {
		return ErrUnknownCollection
	}
	attrs := r.state.attributes[collection]
	storageKey := attributeStorageKey(item, namespace, key)
	attr, ok := attrs[storageKey]
	if !ok {
		return ErrUnknownAttribute
	}
	if err := r.clearAttributeAuthority(collection, item, namespace, origin, attr); err != nil {
		return err
	}
	if namespace.Kind == NamespaceCollectionOwner && !r.isRoot(origin) {
		if err := r.attributesUnlocked(collection, item); err != nil {
			return err
		}
	}

	r.ledger.Unreserve(string(attr.Depositor), attr.Deposit)
	delete(attrs, storageKey)
	r.state.collections[collection].Attributes--
	r.emit(AttributeCleared{
		Collection: collection,
		Item:       cloneItemID(item),
		Namespace:  namespace,
		Key:        []byte(key),
	})
	return nil
}

// clearAttributeAuthority mirrors attributeAuthority but also lets an
// account-namespace depositor clear its own entries after losing the
// approval, so revoked delegates can recover their deposits.
func (r *Registry) clearAttributeAuthority(collection CollectionID, item *ItemID, namespace AttributeNamespace, origin AccountID, attr *Attribute) error {
	if namespace.Kind == NamespaceAccount && origin == namespace.Account && origin == attr.Depositor {
		return nil
	}
	return r.attributeAuthority(collection, item, namespace, origin)
}

// ApproveItemAttributes lets delegate write attributes on the item in its
// own account namespace. Only the item's owner may grant it.
func (r *Registry) ApproveItemAttributes(origin AccountID, collection CollectionID, item ItemID, delegate AccountID) error {
	key := ItemKey{Collection: collection, Item: item}
	details, ok := r.state.items[key]
	if !ok {
		return ErrUnknownItem
	}
	if details.Owner != origin && !r.isRoot(origin) {
		return ErrNoPermission
	}
	approvals, ok := r.state.itemAttributeApprovals[key]
	if !ok {
		approvals = make(map[AccountID]struct{})
		r.state.itemAttributeApprovals[key] = approvals
	}
	if _, exists := approvals[delegate]; !exists && len(approvals) >= r.cfg.ItemAttributesApprovalsLimit {
		return ErrReachedApprovalLimit
	}
	approvals[delegate] = struct{}{}
	r.emit(ItemAttributesApprovalAdded{Collection: collection, Item: item, Delegate: delegate})
	return nil
}

// CancelItemAttributesApproval revokes an attribute approval and deletes
// every attribute the delegate wrote on the item, releasing the deposits.
// The witness must be at least the number of attributes actually deleted.
func (r *Registry) CancelItemAttributesApproval(origin AccountID, collection CollectionID, item ItemID, delegate AccountID, witness uint32) error {
	key := ItemKey{Collection: collection, Item: item}
	details, ok := r.state.items[key]
	if !ok {
		return ErrUnknownItem
	}
	if details.Owner != origin && !r.isRoot(origin) {
		return ErrNoPermission
	}
	approvals := r.state.itemAttributeApprovals[key]
	if _, exists := approvals[delegate]; !exists {
		return ErrUnknownApproval
	}

	attrs := r.state.attributes[collection]
	namespace := AccountNamespace(delegate)
	var owned []attributeKey
	for k := range attrs {
		if k.hasItem && k.item == item && k.namespace == namespace {
			owned = append(owned, k)
		}
	}
	if uint32(len(owned)) > witness {
		return ErrBadWitness
	}
	for _, k := range owned {
		attr := attrs[k]
		r.ledger.Unreserve(string(attr.Depositor), attr.Deposit)
		delete(attrs, k)
		r.state.collections[collection].Attributes--
	}
	delete(approvals, delegate)
	r.emit(ItemAttributesApprovalRemoved{Collection: collection, Item: item, Delegate: delegate})
	return nil
}

func (r *Registry) attributesUnlocked(collection CollectionID, item *ItemID) error {
	if r.state.collectionConfigs[collection].Settings.Has(SettingLockedAttributes) {
		return ErrAttributesLocked
	}
	if item == nil {
		return nil
	}
	if cfg, ok := r.state.itemConfigs[ItemKey{Collection: collection, Item: *item}]; ok && cfg.AttributesLocked {
		return ErrAttributesLocked
	}
	return nil
}

func attributeStorageKey(item *ItemID, namespace AttributeNamespace, key string) attributeKey {
	if item == nil {
		return collectionAttributeKey(namespace, key)
	}
	return itemAttributeKey(*item, namespace, key)
}
