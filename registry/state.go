package registry

import "github.com/holiman/uint256"

// attributeKey addresses one attribute within a collection. hasItem
// distinguishes collection-scoped keys from item-scoped ones so both live in
// the same map.
type attributeKey struct {
	hasItem   bool
	item      ItemID
	namespace AttributeNamespace
	key       string
}

func collectionAttributeKey(namespace AttributeNamespace, key string) attributeKey {
	return attributeKey{namespace: namespace, key: key}
}

func itemAttributeKey(item ItemID, namespace AttributeNamespace, key string) attributeKey {
	return attributeKey{hasItem: true, item: item, namespace: namespace, key: key}
}

// state is the registry's entire mutable storage. All maps are owned by the
// registry; clone produces a fully independent copy for batch rollback.
type state struct {
	nextCollectionID CollectionID

	collections        map[CollectionID]*CollectionDetails
	collectionConfigs  map[CollectionID]*CollectionConfig
	collectionMetadata map[CollectionID]*Metadata
	roles              map[CollectionID]map[AccountID]CollectionRole

	items        map[ItemKey]*ItemDetails
	itemConfigs  map[ItemKey]*ItemConfig
	itemMetadata map[ItemKey]*Metadata

	attributes             map[CollectionID]map[attributeKey]*Attribute
	itemAttributeApprovals map[ItemKey]map[AccountID]struct{}

	itemPrices   map[ItemKey]*ItemPrice
	pendingSwaps map[ItemKey]*PendingSwap

	// ownershipAcceptance records which collection an account has agreed
	// to take ownership of.
	ownershipAcceptance map[AccountID]CollectionID
}

func newState() *state {
	return &state{
		collections:            make(map[CollectionID]*CollectionDetails),
		collectionConfigs:      make(map[CollectionID]*CollectionConfig),
		collectionMetadata:     make(map[CollectionID]*Metadata),
		roles:                  make(map[CollectionID]map[AccountID]CollectionRole),
		items:                  make(map[ItemKey]*ItemDetails),
		itemConfigs:            make(map[ItemKey]*ItemConfig),
		itemMetadata:           make(map[ItemKey]*Metadata),
		attributes:             make(map[CollectionID]map[attributeKey]*Attribute),
		itemAttributeApprovals: make(map[ItemKey]map[AccountID]struct{}),
		itemPrices:             make(map[ItemKey]*ItemPrice),
		pendingSwaps:           make(map[ItemKey]*PendingSwap),
		ownershipAcceptance:    make(map[AccountID]CollectionID),
	}
}

func cloneAmount(v *uint256.Int) *uint256.Int {
	if v == nil {
		return nil
	}
	return new(uint256.Int).Set(v)
}

func cloneBlock(v *BlockNumber) *BlockNumber {
	if v == nil {
		return nil
	}
	b := *v
	return &b
}

func cloneItemID(v *ItemID) *ItemID {
	if v == nil {
		return nil
	}
	id := *v
	return &id
}

func cloneAccount(v *AccountID) *AccountID {
	if v == nil {
		return nil
	}
	a := *v
	return &a
}

func (s *state) clone() *state {
	c := newState()
	c.nextCollectionID = s.nextCollectionID
	for id, d := range s.collections {
		cd := *d
		cd.OwnerDeposit = cloneAmount(d.OwnerDeposit)
		c.collections[id] = &cd
	}
	for id, cfg := range s.collectionConfigs {
		cc := *cfg
		cc.MintSettings.Price = cloneAmount(cfg.MintSettings.Price)
		cc.MintSettings.StartBlock = cloneBlock(cfg.MintSettings.StartBlock)
		cc.MintSettings.EndBlock = cloneBlock(cfg.MintSettings.EndBlock)
		c.collectionConfigs[id] = &cc
	}
	for id, m := range s.collectionMetadata {
		c.collectionMetadata[id] = cloneMetadata(m)
	}
	for id, team := range s.roles {
		ct := make(map[AccountID]CollectionRole, len(team))
		for acct, role := range team {
			ct[acct] = role
		}
		c.roles[id] = ct
	}
	for key, d := range s.items {
		cd := *d
		cd.Deposit = cloneAmount(d.Deposit)
		cd.Approvals = make(map[AccountID]*BlockNumber, len(d.Approvals))
		for acct, deadline := range d.Approvals {
			cd.Approvals[acct] = cloneBlock(deadline)
		}
		c.items[key] = &cd
	}
	for key, cfg := range s.itemConfigs {
		cc := *cfg
		c.itemConfigs[key] = &cc
	}
	for key, m := range s.itemMetadata {
		c.itemMetadata[key] = cloneMetadata(m)
	}
	for id, attrs := range s.attributes {
		ca := make(map[attributeKey]*Attribute, len(attrs))
		for key, a := range attrs {
			v := *a
			v.Value = append([]byte(nil), a.Value...)
			v.Deposit = cloneAmount(a.Deposit)
			ca[key] = &v
		}
		c.attributes[id] = ca
	}
	for key, approvals := range s.itemAttributeApprovals {
		ca := make(map[AccountID]struct{}, len(approvals))
		for acct := range approvals {
			ca[acct] = struct{}{}
		}
		c.itemAttributeApprovals[key] = ca
	}
	for key, p := range s.itemPrices {
		cp := *p
		cp.Amount = cloneAmount(p.Amount)
		cp.WhitelistedBuyer = cloneAccount(p.WhitelistedBuyer)
		c.itemPrices[key] = &cp
	}
	for key, swap := range s.pendingSwaps {
		cs := *swap
		cs.DesiredItem = cloneItemID(swap.DesiredItem)
		if swap.Price != nil {
			p := *swap.Price
			p.Amount = cloneAmount(swap.Price.Amount)
			cs.Price = &p
		}
		c.pendingSwaps[key] = &cs
	}
	for acct, id := range s.ownershipAcceptance {
		c.ownershipAcceptance[acct] = id
	}
	return c
}

func cloneMetadata(m *Metadata) *Metadata {
	cm := *m
	cm.Data = append([]byte(nil), m.Data...)
	cm.Deposit = cloneAmount(m.Deposit)
	return &cm
}

// collectionAttributes returns the attribute map for a collection, creating
// it on first write.
func (s *state) collectionAttributes(collection CollectionID) map[attributeKey]*Attribute {
	attrs, ok := s.attributes[collection]
	if !ok {
		attrs = make(map[attributeKey]*Attribute)
		s.attributes[collection] = attrs
	}
	return attrs
}
