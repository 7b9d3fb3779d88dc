package registry_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards/eddsa"
	"github.com/holiman/uint256"

	"github.com/uniques-xyz/go-uniques/presign"
	"github.com/uniques-xyz/go-uniques/registry"
)

func signMintData(t *testing.T, priv *eddsa.PrivateKey, data presign.MintData) []byte {
	t.Helper()
	payload, err := presign.EncodeMintData(data)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	sig, err := presign.Sign(priv, payload)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return sig
}

func signAttributeData(t *testing.T, priv *eddsa.PrivateKey, data presign.AttributeData) []byte {
	t.Helper()
	payload, err := presign.EncodeAttributeData(data)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	sig, err := presign.Sign(priv, payload)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return sig
}

func TestMintPreSigned(t *testing.T) {
	r := newTestRegistry(t)
	id := createCollection(t, r, alice)

	priv, err := presign.GenerateKey()
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}
	r.RegisterSigningKey(alice, presign.PublicKeyBytes(priv))

	data := presign.MintData{
		Collection: uint32(id),
		Item:       7,
		Attributes: [][2][]byte{{[]byte("color"), []byte("red")}},
		Metadata:   []byte("ipfs://presigned"),
		Deadline:   100,
	}
	sig := signMintData(t, priv, data)

	if err := r.MintPreSigned(bob, data, sig, alice); err != nil {
		t.Fatalf("presigned mint failed: %v", err)
	}
	details, ok := r.Item(id, 7)
	if !ok || details.Owner != bob {
		t.Fatalf("expected item owned by submitter, got %+v (%v)", details, ok)
	}
	// Deposits are the submitter's.
	if details.Depositor != bob {
		t.Errorf("expected bob as depositor, got %s", details.Depositor)
	}
	item := registry.ItemID(7)
	attr, ok := r.Attribute(id, &item, registry.CollectionOwnerNamespace(), "color")
	if !ok || string(attr.Value) != "red" {
		t.Errorf("expected presigned attribute, got %q (%v)", attr.Value, ok)
	}
	if attr.Depositor != bob {
		t.Errorf("expected attribute deposit on bob, got %s", attr.Depositor)
	}
	m, ok := r.ItemMetadataOf(id, 7)
	if !ok || string(m.Data) != "ipfs://presigned" {
		t.Errorf("expected presigned metadata, got %q (%v)", m.Data, ok)
	}

	// The consumed payload cannot be replayed.
	wantErr(t, r.MintPreSigned(carol, data, sig, alice), registry.ErrAlreadyExists)
}

func TestMintPreSignedChecks(t *testing.T) {
	r := newTestRegistry(t)
	id := createCollection(t, r, alice)

	priv, _ := presign.GenerateKey()
	r.RegisterSigningKey(alice, presign.PublicKeyBytes(priv))
	stranger, _ := presign.GenerateKey()

	data := presign.MintData{Collection: uint32(id), Item: 1, OnlyAccount: string(bob), Deadline: 10}
	sig := signMintData(t, priv, data)

	t.Run("BadSignature", func(t *testing.T) {
		forged := signMintData(t, stranger, data)
		wantErr(t, r.MintPreSigned(bob, data, forged, alice), registry.ErrBadSignature)
	})

	t.Run("UnknownSigner", func(t *testing.T) {
		wantErr(t, r.MintPreSigned(bob, data, sig, carol), registry.ErrBadSignature)
	})

	t.Run("DeadlineExpired", func(t *testing.T) {
		r.SetBlockNumber(11)
		wantErr(t, r.MintPreSigned(bob, data, sig, alice), registry.ErrDeadlineExpired)
		r.SetBlockNumber(1)
	})

	t.Run("OnlyAccount", func(t *testing.T) {
		wantErr(t, r.MintPreSigned(carol, data, sig, alice), registry.ErrNoPermission)
	})

	t.Run("SignerNeedsIssuerRole", func(t *testing.T) {
		other, _ := presign.GenerateKey()
		r.RegisterSigningKey(dave, presign.PublicKeyBytes(other))
		unauthorized := presign.MintData{Collection: uint32(id), Item: 2, Deadline: 10}
		wantErr(t, r.MintPreSigned(bob, unauthorized, signMintData(t, other, unauthorized), dave), registry.ErrNoPermission)
	})

	t.Run("OwnerWithoutIssuerRoleCannotSign", func(t *testing.T) {
		// Carol owns the collection but holds no role; the role table
		// alone decides who may authorize presigned mints.
		owned, err := r.Create(carol, dave, registry.CollectionConfig{})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		key, _ := presign.GenerateKey()
		r.RegisterSigningKey(carol, presign.PublicKeyBytes(key))
		data := presign.MintData{Collection: uint32(owned), Item: 0, Deadline: 10}
		wantErr(t, r.MintPreSigned(bob, data, signMintData(t, key, data), carol), registry.ErrNoPermission)
	})
}

func TestMintPreSignedPrice(t *testing.T) {
	r := newTestRegistry(t)
	id := createCollection(t, r, alice)

	priv, _ := presign.GenerateKey()
	r.RegisterSigningKey(alice, presign.PublicKeyBytes(priv))

	price := uint256.NewInt(750)
	data := presign.MintData{
		Collection: uint32(id),
		Item:       1,
		Deadline:   100,
		MintPrice:  price.Bytes(),
	}
	sig := signMintData(t, priv, data)

	ownerBefore := r.Ledger().Free(string(alice))
	if err := r.MintPreSigned(bob, data, sig, alice); err != nil {
		t.Fatalf("presigned mint failed: %v", err)
	}
	earned := new(uint256.Int).Sub(r.Ledger().Free(string(alice)), ownerBefore)
	if !earned.Eq(price) {
		t.Errorf("expected owner paid %s, got %s", price, earned)
	}
}

func TestSetAttributesPreSigned(t *testing.T) {
	r := newTestRegistry(t)
	id := createCollection(t, r, alice)
	mintItem(t, r, alice, id, 0)
	if err := r.Transfer(alice, id, 0, carol); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	// Carol, the item owner, signs; dave submits and pays the deposits.
	priv, _ := presign.GenerateKey()
	r.RegisterSigningKey(carol, presign.PublicKeyBytes(priv))

	data := presign.AttributeData{
		Collection:    uint32(id),
		Item:          0,
		Attributes:    [][2][]byte{{[]byte("level"), []byte("3")}},
		NamespaceKind: uint8(registry.NamespaceItemOwner),
		Deadline:      100,
	}
	sig := signAttributeData(t, priv, data)

	if err := r.SetAttributesPreSigned(dave, data, sig, carol); err != nil {
		t.Fatalf("presigned attributes failed: %v", err)
	}
	item := registry.ItemID(0)
	attr, ok := r.Attribute(id, &item, registry.ItemOwnerNamespace(), "level")
	if !ok || string(attr.Value) != "3" {
		t.Fatalf("expected attribute set, got %q (%v)", attr.Value, ok)
	}
	if attr.Depositor != dave {
		t.Errorf("expected deposit on the submitter, got %s", attr.Depositor)
	}

	if ev, ok := r.LastEvent().(registry.PreSignedAttributesSet); !ok || ev.Item != 0 {
		t.Errorf("expected PreSignedAttributesSet event, got %#v", r.LastEvent())
	}
}

func TestSetAttributesPreSignedUnauthorizedSigner(t *testing.T) {
	r := newTestRegistry(t)
	id := createCollection(t, r, alice)
	mintItem(t, r, alice, id, 0)

	// Bob signs for the item-owner namespace without owning the item.
	priv, _ := presign.GenerateKey()
	r.RegisterSigningKey(bob, presign.PublicKeyBytes(priv))

	data := presign.AttributeData{
		Collection:    uint32(id),
		Item:          0,
		Attributes:    [][2][]byte{{[]byte("k"), []byte("v")}},
		NamespaceKind: uint8(registry.NamespaceItemOwner),
		Deadline:      100,
	}
	sig := signAttributeData(t, priv, data)
	wantErr(t, r.SetAttributesPreSigned(carol, data, sig, bob), registry.ErrNoPermission)
}
