package registry

import "github.com/holiman/uint256"

// SetPrice lists an item for sale at the given price, optionally restricted
// to a single whitelisted buyer. A nil price withdraws the listing.
func (r *Registry) SetPrice(origin AccountID, collection CollectionID, item ItemID, price *uint256.Int, whitelistedBuyer *AccountID) error {
	key := ItemKey{Collection: collection, Item: item}
	details, ok := r.state.items[key]
	if !ok {
		return ErrUnknownItem
	}
	if details.Owner != origin && !r.isRoot(origin) {
		return ErrNoPermission
	}
	if price == nil {
		delete(r.state.itemPrices, key)
		r.emit(ItemPriceRemoved{Collection: collection, Item: item})
		return nil
	}
	if err := r.canTransfer(key); err != nil {
		return err
	}
	r.state.itemPrices[key] = &ItemPrice{
		Amount:           new(uint256.Int).Set(price),
		WhitelistedBuyer: cloneAccount(whitelistedBuyer),
	}
	r.emit(ItemPriceSet{
		Collection:       collection,
		Item:             item,
		Price:            new(uint256.Int).Set(price),
		WhitelistedBuyer: cloneAccount(whitelistedBuyer),
	})
	return nil
}

// BuyItem buys a listed item. The bid must cover the listed price but only
// the listed price moves; ownership transfers to the buyer and the listing
// and all transfer approvals are cleared.
func (r *Registry) BuyItem(origin AccountID, collection CollectionID, item ItemID, bid *uint256.Int) error {
	key := ItemKey{Collection: collection, Item: item}
	details, ok := r.state.items[key]
	if !ok {
		return ErrUnknownItem
	}
	listing, ok := r.state.itemPrices[key]
	if !ok {
		return ErrNotForSale
	}
	if details.Owner == origin {
		return ErrNoPermission
	}
	if listing.WhitelistedBuyer != nil && *listing.WhitelistedBuyer != origin {
		return ErrNoPermission
	}
	if bid == nil || bid.Lt(listing.Amount) {
		return ErrBidTooLow
	}
	if err := r.canTransfer(key); err != nil {
		return err
	}

	seller := details.Owner
	if err := r.ledger.Transfer(string(origin), string(seller), listing.Amount); err != nil {
		return err
	}
	details.Owner = origin
	details.Approvals = make(map[AccountID]*BlockNumber)
	price := listing.Amount
	delete(r.state.itemPrices, key)

	r.log.Info().Uint32("collection", uint32(collection)).Uint32("item", uint32(item)).
		Str("buyer", string(origin)).Msg("item bought")
	r.emit(ItemBought{Collection: collection, Item: item, Price: price, Seller: seller, Buyer: origin})
	return nil
}

// CreateSwap offers an item in exchange for an item of a desired collection,
// optionally a specific one and optionally sweetened by a directional
// payment. One swap per offered item; a new offer replaces the old.
func (r *Registry) CreateSwap(origin AccountID, offeredCollection CollectionID, offeredItem ItemID, desiredCollection CollectionID, desiredItem *ItemID, price *PriceWithDirection, duration BlockNumber) error {
	key := ItemKey{Collection: offeredCollection, Item: offeredItem}
	details, ok := r.state.items[key]
	if !ok {
		return ErrUnknownItem
	}
	if details.Owner != origin && !r.isRoot(origin) {
		return ErrNoPermission
	}
	if duration > r.cfg.MaxDeadlineDuration {
		return ErrWrongDuration
	}
	if _, ok := r.state.collections[desiredCollection]; !ok {
		return ErrUnknownCollection
	}
	if desiredItem != nil {
		if _, ok := r.state.items[ItemKey{Collection: desiredCollection, Item: *desiredItem}]; !ok {
			return ErrUnknownItem
		}
	}
	if err := r.canTransfer(key); err != nil {
		return err
	}

	deadline := r.block + duration
	var storedPrice *PriceWithDirection
	if price != nil {
		storedPrice = &PriceWithDirection{
			Amount:    new(uint256.Int).Set(price.Amount),
			Direction: price.Direction,
		}
	}
	r.state.pendingSwaps[key] = &PendingSwap{
		DesiredCollection: desiredCollection,
		DesiredItem:       cloneItemID(desiredItem),
		Price:             storedPrice,
		Deadline:          deadline,
	}
	r.emit(SwapCreated{
		OfferedCollection: offeredCollection,
		OfferedItem:       offeredItem,
		DesiredCollection: desiredCollection,
		DesiredItem:       cloneItemID(desiredItem),
		Price:             storedPrice,
		Deadline:          deadline,
	})
	return nil
}

// CancelSwap withdraws a pending swap. The offered item's owner may cancel
// at any time; once the deadline has passed anyone may.
func (r *Registry) CancelSwap(origin AccountID, offeredCollection CollectionID, offeredItem ItemID) error {
	key := ItemKey{Collection: offeredCollection, Item: offeredItem}
	swap, ok := r.state.pendingSwaps[key]
	if !ok {
		return ErrSwapNotFound
	}
	details, ok := r.state.items[key]
	if !ok {
		return ErrUnknownItem
	}
	if details.Owner != origin && !r.isRoot(origin) && swap.Deadline >= r.block {
		return ErrNoPermission
	}
	delete(r.state.pendingSwaps, key)
	r.emit(SwapCancelled{OfferedCollection: offeredCollection, OfferedItem: offeredItem})
	return nil
}

// ClaimSwap completes a pending swap: the caller sends an item matching the
// swap's desire and receives the offered item, with the optional payment
// settling in its stated direction. witnessPrice must restate the stored
// price exactly.
func (r *Registry) ClaimSwap(origin AccountID, sendCollection CollectionID, sendItem ItemID, receiveCollection CollectionID, receiveItem ItemID, witnessPrice *PriceWithDirection) error {
	receiveKey := ItemKey{Collection: receiveCollection, Item: receiveItem}
	swap, ok := r.state.pendingSwaps[receiveKey]
	if !ok {
		return ErrSwapNotFound
	}
	if swap.DesiredCollection != sendCollection {
		return ErrSwapNotFound
	}
	if swap.DesiredItem != nil && *swap.DesiredItem != sendItem {
		return ErrSwapNotFound
	}
	if swap.Deadline < r.block {
		return ErrSwapExpired
	}
	if !priceMatches(swap.Price, witnessPrice) {
		return ErrBadWitness
	}

	sendKey := ItemKey{Collection: sendCollection, Item: sendItem}
	sent, ok := r.state.items[sendKey]
	if !ok {
		return ErrUnknownItem
	}
	if sent.Owner != origin {
		return ErrNoPermission
	}
	received, ok := r.state.items[receiveKey]
	if !ok {
		return ErrUnknownItem
	}
	if err := r.canTransfer(sendKey); err != nil {
		return err
	}
	if err := r.canTransfer(receiveKey); err != nil {
		return err
	}

	creator := received.Owner
	if swap.Price != nil {
		switch swap.Price.Direction {
		case DirectionSend:
			if err := r.ledger.Transfer(string(creator), string(origin), swap.Price.Amount); err != nil {
				return err
			}
		case DirectionReceive:
			if err := r.ledger.Transfer(string(origin), string(creator), swap.Price.Amount); err != nil {
				return err
			}
		}
	}

	sent.Owner = creator
	sent.Approvals = make(map[AccountID]*BlockNumber)
	received.Owner = origin
	received.Approvals = make(map[AccountID]*BlockNumber)
	delete(r.state.itemPrices, sendKey)
	delete(r.state.itemPrices, receiveKey)
	delete(r.state.pendingSwaps, receiveKey)

	r.log.Info().Uint32("sent_collection", uint32(sendCollection)).Uint32("sent_item", uint32(sendItem)).
		Uint32("received_collection", uint32(receiveCollection)).Uint32("received_item", uint32(receiveItem)).
		Msg("swap claimed")
	r.emit(SwapClaimed{
		SentCollection:     sendCollection,
		SentItem:           sendItem,
		SentItemOwner:      creator,
		ReceivedCollection: receiveCollection,
		ReceivedItem:       receiveItem,
		ReceivedItemOwner:  origin,
		Price:              swap.Price,
	})
	return nil
}

func priceMatches(stored, witness *PriceWithDirection) bool {
	if stored == nil || witness == nil {
		return stored == nil && witness == nil
	}
	return stored.Direction == witness.Direction && stored.Amount.Eq(witness.Amount)
}
