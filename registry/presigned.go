package registry

import (
	"github.com/holiman/uint256"

	"github.com/uniques-xyz/go-uniques/ledger"
	"github.com/uniques-xyz/go-uniques/presign"
)

// verifyPresigned checks a presigned payload's signature against the key
// registered for signer.
func (r *Registry) verifyPresigned(signer AccountID, payload, signature []byte) error {
	pub, ok := r.signingKeys[signer]
	if !ok {
		return ErrBadSignature
	}
	valid, err := presign.Verify(pub, payload, signature)
	if err != nil || !valid {
		return ErrBadSignature
	}
	return nil
}

// MintPreSigned mints the item described by a payload signed off-chain by an
// account holding the Issuer role. The submitter becomes the item's owner
// and pays every deposit and the optional mint price. An already minted item
// id fails with AlreadyExists, which is what stops replays.
//
// Checks run in a fixed order: signature, deadline, submitter restriction,
// then the signer's authority.
func (r *Registry) MintPreSigned(origin AccountID, data presign.MintData, signature []byte, signer AccountID) error {
	payload, err := presign.EncodeMintData(data)
	if err != nil {
		return err
	}
	if err := r.verifyPresigned(signer, payload, signature); err != nil {
		return err
	}
	if BlockNumber(data.Deadline) < r.block {
		return ErrDeadlineExpired
	}
	if data.OnlyAccount != "" && AccountID(data.OnlyAccount) != origin {
		return ErrNoPermission
	}

	collection := CollectionID(data.Collection)
	item := ItemID(data.Item)
	details, ok := r.state.collections[collection]
	if !ok {
		return ErrUnknownCollection
	}
	if !r.hasRole(collection, signer, RoleIssuer) {
		return ErrNoPermission
	}
	key := ItemKey{Collection: collection, Item: item}
	if _, exists := r.state.items[key]; exists {
		return ErrAlreadyExists
	}
	cfg := r.state.collectionConfigs[collection]
	if cfg.MaxSupply != 0 && details.Items >= cfg.MaxSupply {
		return ErrMaxSupplyReached
	}
	if len(data.Metadata) > r.cfg.StringLimit {
		return ErrDataTooLong
	}
	for _, pair := range data.Attributes {
		if len(pair[0]) > r.cfg.KeyLimit || len(pair[1]) > r.cfg.ValueLimit {
			return ErrDataTooLong
		}
	}

	var price *uint256.Int
	if len(data.MintPrice) > 0 {
		price = new(uint256.Int).SetBytes(data.MintPrice)
	}

	// Everything the submitter pays, checked up front so the mint applies
	// all or nothing.
	itemDeposit := new(uint256.Int).Set(r.cfg.ItemDeposit)
	needed := new(uint256.Int).Set(itemDeposit)
	if price != nil {
		needed.Add(needed, price)
	}
	attrDeposits := make([]*uint256.Int, len(data.Attributes))
	for i, pair := range data.Attributes {
		attrDeposits[i] = r.attributeDeposit(string(pair[0]), pair[1])
		needed.Add(needed, attrDeposits[i])
	}
	var metadataDeposit *uint256.Int
	if len(data.Metadata) > 0 {
		metadataDeposit = r.metadataDeposit(data.Metadata)
		needed.Add(needed, metadataDeposit)
	}
	if r.ledger.Free(string(origin)).Lt(needed) {
		return ledger.ErrInsufficientBalance
	}

	if price != nil {
		if err := r.ledger.Transfer(string(origin), string(details.Owner), price); err != nil {
			return err
		}
	}
	if err := r.ledger.Reserve(string(origin), itemDeposit); err != nil {
		return err
	}
	r.state.items[key] = &ItemDetails{
		Owner:     origin,
		Deposit:   itemDeposit,
		Depositor: origin,
		Approvals: make(map[AccountID]*BlockNumber),
	}
	r.state.itemConfigs[key] = ptr(itemConfigFromSettings(cfg.MintSettings.DefaultItemSettings))
	details.Items++
	details.ItemConfigs++

	attrs := r.state.collectionAttributes(collection)
	namespace := CollectionOwnerNamespace()
	for i, pair := range data.Attributes {
		if err := r.ledger.Reserve(string(origin), attrDeposits[i]); err != nil {
			return err
		}
		storageKey := itemAttributeKey(item, namespace, string(pair[0]))
		if old, existed := attrs[storageKey]; existed {
			r.ledger.Unreserve(string(old.Depositor), old.Deposit)
		} else {
			details.Attributes++
		}
		attrs[storageKey] = &Attribute{
			Value:     append([]byte(nil), pair[1]...),
			Deposit:   attrDeposits[i],
			Depositor: origin,
		}
	}
	if metadataDeposit != nil {
		if err := r.ledger.Reserve(string(origin), metadataDeposit); err != nil {
			return err
		}
		r.state.itemMetadata[key] = &Metadata{
			Data:      append([]byte(nil), data.Metadata...),
			Deposit:   metadataDeposit,
			Depositor: origin,
		}
		details.ItemMetadatas++
	}

	r.log.Info().Uint32("collection", uint32(collection)).Uint32("item", uint32(item)).
		Str("signer", string(signer)).Msg("presigned mint")
	r.emit(Issued{Collection: collection, Item: item, Owner: origin})
	return nil
}

// SetAttributesPreSigned writes the attributes described by a payload signed
// off-chain by an account authorized for the payload's namespace. Deposits
// are charged to the submitter.
func (r *Registry) SetAttributesPreSigned(origin AccountID, data presign.AttributeData, signature []byte, signer AccountID) error {
	payload, err := presign.EncodeAttributeData(data)
	if err != nil {
		return err
	}
	if err := r.verifyPresigned(signer, payload, signature); err != nil {
		return err
	}
	if BlockNumber(data.Deadline) < r.block {
		return ErrDeadlineExpired
	}
	if data.OnlyAccount != "" && AccountID(data.OnlyAccount) != origin {
		return ErrNoPermission
	}

	collection := CollectionID(data.Collection)
	item := ItemID(data.Item)
	key := ItemKey{Collection: collection, Item: item}
	if _, ok := r.state.collections[collection]; !ok {
		return ErrUnknownCollection
	}
	if _, ok := r.state.items[key]; !ok {
		return ErrUnknownItem
	}
	namespace := AttributeNamespace{
		Kind:    NamespaceKind(data.NamespaceKind),
		Account: AccountID(data.NamespaceAccount),
	}
	if err := r.attributeAuthority(collection, &item, namespace, signer); err != nil {
		return err
	}
	if namespace.Kind == NamespaceCollectionOwner {
		if err := r.attributesUnlocked(collection, &item); err != nil {
			return err
		}
	}
	for _, pair := range data.Attributes {
		if len(pair[0]) > r.cfg.KeyLimit || len(pair[1]) > r.cfg.ValueLimit {
			return ErrDataTooLong
		}
	}

	needed := new(uint256.Int)
	attrDeposits := make([]*uint256.Int, len(data.Attributes))
	for i, pair := range data.Attributes {
		attrDeposits[i] = r.attributeDeposit(string(pair[0]), pair[1])
		needed.Add(needed, attrDeposits[i])
	}
	if r.ledger.Free(string(origin)).Lt(needed) {
		return ledger.ErrInsufficientBalance
	}

	attrs := r.state.collectionAttributes(collection)
	details := r.state.collections[collection]
	for i, pair := range data.Attributes {
		if err := r.ledger.Reserve(string(origin), attrDeposits[i]); err != nil {
			return err
		}
		storageKey := itemAttributeKey(item, namespace, string(pair[0]))
		if old, existed := attrs[storageKey]; existed {
			r.ledger.Unreserve(string(old.Depositor), old.Deposit)
		} else {
			details.Attributes++
		}
		attrs[storageKey] = &Attribute{
			Value:     append([]byte(nil), pair[1]...),
			Deposit:   attrDeposits[i],
			Depositor: origin,
		}
	}

	r.emit(PreSignedAttributesSet{Collection: collection, Item: item, Namespace: namespace})
	return nil
}
