package registry_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/holiman/uint256"

	"github.com/uniques-xyz/go-uniques/ledger"
	"github.com/uniques-xyz/go-uniques/registry"
)

const (
	alice = registry.AccountID("alice")
	bob   = registry.AccountID("bob")
	carol = registry.AccountID("carol")
	dave  = registry.AccountID("dave")
)

// endowment comfortably covers every deposit and price used in the tests.
var endowment = uint256.NewInt(1_000_000_000_000)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	l := ledger.NewLedger()
	for _, account := range []registry.AccountID{alice, bob, carol, dave} {
		l.Deposit(string(account), endowment)
	}
	r := registry.New(registry.DefaultConfig(), l)
	r.SetBlockNumber(1)
	return r
}

func createCollection(t *testing.T, r *registry.Registry, owner registry.AccountID) registry.CollectionID {
	t.Helper()
	id, err := r.Create(owner, owner, registry.CollectionConfig{})
	if err != nil {
		t.Fatalf("create collection failed: %v", err)
	}
	return id
}

func mintItem(t *testing.T, r *registry.Registry, owner registry.AccountID, collection registry.CollectionID, item registry.ItemID) {
	t.Helper()
	if err := r.Mint(owner, collection, item, owner, nil); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
}

func wantErr(t *testing.T, got, want error) {
	t.Helper()
	if !errors.Is(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCreateCollection(t *testing.T) {
	r := newTestRegistry(t)

	id, err := r.Create(alice, bob, registry.CollectionConfig{})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id != 0 {
		t.Errorf("expected first collection id 0, got %d", id)
	}
	if next := r.NextCollectionID(); next != 1 {
		t.Errorf("expected next id 1, got %d", next)
	}

	details, ok := r.Collection(id)
	if !ok {
		t.Fatal("collection not found")
	}
	if details.Owner != alice {
		t.Errorf("expected owner alice, got %s", details.Owner)
	}

	// The admin account holds the full role set, the owner none.
	role, ok := r.CollectionRoleOf(id, bob)
	if !ok || role != registry.RoleFull {
		t.Errorf("expected admin role %d for bob, got %d", registry.RoleFull, role)
	}
	if _, ok := r.CollectionRoleOf(id, alice); ok {
		t.Error("owner must not hold an explicit role")
	}

	deposit := r.Constants().CollectionDeposit
	if got := r.Ledger().Reserved(string(alice)); !got.Eq(deposit) {
		t.Errorf("expected reserved %s, got %s", deposit, got)
	}

	if ev, ok := r.LastEvent().(registry.Created); !ok || ev.Collection != id || ev.Owner != alice {
		t.Errorf("expected Created event, got %#v", r.LastEvent())
	}
}

func TestCreateRequiresDeposit(t *testing.T) {
	l := ledger.NewLedger()
	r := registry.New(registry.DefaultConfig(), l)

	if _, err := r.Create(alice, alice, registry.CollectionConfig{}); !errors.Is(err, ledger.ErrInsufficientBalance) {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
	if len(r.Events()) != 0 {
		t.Error("failed create must not emit events")
	}
}

func TestSetTeamReplacesRoles(t *testing.T) {
	r := newTestRegistry(t)
	id := createCollection(t, r, alice)

	issuer, admin := bob, carol
	if err := r.SetTeam(alice, id, &issuer, &admin, nil); err != nil {
		t.Fatalf("set team failed: %v", err)
	}
	if role, _ := r.CollectionRoleOf(id, bob); role != registry.RoleIssuer {
		t.Errorf("expected bob issuer, got %d", role)
	}
	if role, _ := r.CollectionRoleOf(id, carol); role != registry.RoleAdmin {
		t.Errorf("expected carol admin, got %d", role)
	}
	// The previous full-role holder (alice as admin) was replaced.
	if _, ok := r.CollectionRoleOf(id, alice); ok {
		t.Error("expected alice removed from team")
	}

	wantErr(t, r.SetTeam(bob, id, &issuer, nil, nil), registry.ErrNoPermission)
}

func TestTwoPhaseOwnershipTransfer(t *testing.T) {
	r := newTestRegistry(t)
	id := createCollection(t, r, alice)

	// Without prior acceptance the transfer is rejected.
	wantErr(t, r.TransferOwnership(alice, id, bob), registry.ErrUnaccepted)

	if err := r.SetAcceptOwnership(bob, &id); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted, ok := r.OwnershipAcceptanceOf(bob); !ok || accepted != id {
		t.Fatalf("expected acceptance for %d, got %d (%v)", id, accepted, ok)
	}

	deposit := r.Constants().CollectionDeposit
	if err := r.TransferOwnership(alice, id, bob); err != nil {
		t.Fatalf("transfer ownership failed: %v", err)
	}
	details, _ := r.Collection(id)
	if details.Owner != bob {
		t.Errorf("expected owner bob, got %s", details.Owner)
	}
	// The deposit moved with the collection.
	if got := r.Ledger().Reserved(string(alice)); !got.IsZero() {
		t.Errorf("expected alice deposit released, got %s", got)
	}
	if got := r.Ledger().Reserved(string(bob)); !got.Eq(deposit) {
		t.Errorf("expected bob reserved %s, got %s", deposit, got)
	}
	// Acceptance is consumed.
	if _, ok := r.OwnershipAcceptanceOf(bob); ok {
		t.Error("expected acceptance consumed")
	}
}

func TestSetAcceptOwnershipWithdraw(t *testing.T) {
	r := newTestRegistry(t)
	id := createCollection(t, r, alice)

	if err := r.SetAcceptOwnership(bob, &id); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if err := r.SetAcceptOwnership(bob, nil); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	wantErr(t, r.TransferOwnership(alice, id, bob), registry.ErrUnaccepted)
}

func TestDestroyCollection(t *testing.T) {
	r := newTestRegistry(t)
	id := createCollection(t, r, alice)
	mintItem(t, r, alice, id, 0)

	wantErr(t, r.Destroy(alice, id, registry.DestroyWitness{ItemConfigs: 1}), registry.ErrCollectionNotEmpty)

	if err := r.Burn(alice, id, 0); err != nil {
		t.Fatalf("burn failed: %v", err)
	}

	// The burned item's config survives and must be witnessed.
	wantErr(t, r.Destroy(alice, id, registry.DestroyWitness{}), registry.ErrBadWitness)

	if err := r.Destroy(alice, id, registry.DestroyWitness{ItemConfigs: 1}); err != nil {
		t.Fatalf("destroy failed: %v", err)
	}
	if _, ok := r.Collection(id); ok {
		t.Error("expected collection removed")
	}
	if got := r.Ledger().Reserved(string(alice)); !got.IsZero() {
		t.Errorf("expected all deposits released, got %s", got)
	}
	if got := r.Ledger().Free(string(alice)); !got.Eq(endowment) {
		t.Errorf("expected full endowment back, got %s", got)
	}

	wantErr(t, r.Destroy(alice, id, registry.DestroyWitness{}), registry.ErrUnknownCollection)
}

func TestDestroyRequiresOwner(t *testing.T) {
	r := newTestRegistry(t)
	id := createCollection(t, r, alice)
	wantErr(t, r.Destroy(bob, id, registry.DestroyWitness{}), registry.ErrNoPermission)
}

func TestMaxSupply(t *testing.T) {
	r := newTestRegistry(t)
	id := createCollection(t, r, alice)
	mintItem(t, r, alice, id, 0)
	mintItem(t, r, alice, id, 1)

	wantErr(t, r.SetCollectionMaxSupply(alice, id, 1), registry.ErrMaxSupplyTooSmall)

	if err := r.SetCollectionMaxSupply(alice, id, 2); err != nil {
		t.Fatalf("set max supply failed: %v", err)
	}
	wantErr(t, r.Mint(alice, id, 2, alice, nil), registry.ErrMaxSupplyReached)
}

func TestMaxSupplyLocked(t *testing.T) {
	r := newTestRegistry(t)
	id, err := r.Create(alice, alice, registry.CollectionConfig{
		Settings:  registry.SettingLockedMaxSupply,
		MaxSupply: 5,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	wantErr(t, r.SetCollectionMaxSupply(alice, id, 10), registry.ErrMaxSupplyLocked)
}

func TestCollectionMetadata(t *testing.T) {
	r := newTestRegistry(t)
	id := createCollection(t, r, alice)

	data := []byte("ipfs://collection")
	if err := r.SetCollectionMetadata(alice, id, data); err != nil {
		t.Fatalf("set metadata failed: %v", err)
	}
	m, ok := r.CollectionMetadataOf(id)
	if !ok || string(m.Data) != string(data) {
		t.Fatalf("expected stored metadata, got %q (%v)", m.Data, ok)
	}
	if m.Deposit.IsZero() {
		t.Error("expected a non-zero metadata deposit")
	}

	wantErr(t, r.SetCollectionMetadata(bob, id, data), registry.ErrNoPermission)

	if err := r.ClearCollectionMetadata(alice, id); err != nil {
		t.Fatalf("clear metadata failed: %v", err)
	}
	if _, ok := r.CollectionMetadataOf(id); ok {
		t.Error("expected metadata cleared")
	}
	wantErr(t, r.ClearCollectionMetadata(alice, id), registry.ErrUnknownMetadata)
}

func TestCollectionMetadataLocked(t *testing.T) {
	r := newTestRegistry(t)
	id, err := r.Create(alice, alice, registry.CollectionConfig{Settings: registry.SettingLockedMetadata})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	wantErr(t, r.SetCollectionMetadata(alice, id, []byte("x")), registry.ErrMetadataLocked)
}

func TestRootBypassesOwnership(t *testing.T) {
	l := ledger.NewLedger()
	l.Deposit(string(alice), endowment)
	cfg := registry.DefaultConfig()
	cfg.Root = "root"
	r := registry.New(cfg, l)

	id, err := r.Create(alice, alice, registry.CollectionConfig{})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	issuer := bob
	if err := r.SetTeam("root", id, &issuer, nil, nil); err != nil {
		t.Errorf("expected root to manage the team, got %v", err)
	}
}

func TestCollectionSettingsMatrix(t *testing.T) {
	// Every combination of the four creation-time bits gates exactly its
	// own capability and nothing else.
	for s := registry.CollectionSetting(0); s < 16; s++ {
		t.Run(fmt.Sprintf("Settings%04b", s), func(t *testing.T) {
			r := newTestRegistry(t)
			id, err := r.Create(alice, alice, registry.CollectionConfig{Settings: s})
			if err != nil {
				t.Fatalf("create failed: %v", err)
			}
			mintItem(t, r, alice, id, 0)

			transferErr := r.Transfer(alice, id, 0, bob)
			if s.Has(registry.SettingItemsNonTransferable) {
				wantErr(t, transferErr, registry.ErrItemsNonTransferable)
			} else if transferErr != nil {
				t.Errorf("transfer: unexpected %v", transferErr)
			}

			metadataErr := r.SetCollectionMetadata(alice, id, []byte("m"))
			if s.Has(registry.SettingLockedMetadata) {
				wantErr(t, metadataErr, registry.ErrMetadataLocked)
			} else if metadataErr != nil {
				t.Errorf("set metadata: unexpected %v", metadataErr)
			}

			attrErr := r.SetAttribute(alice, id, nil, registry.CollectionOwnerNamespace(), "k", []byte("v"))
			if s.Has(registry.SettingLockedAttributes) {
				wantErr(t, attrErr, registry.ErrAttributesLocked)
			} else if attrErr != nil {
				t.Errorf("set attribute: unexpected %v", attrErr)
			}

			supplyErr := r.SetCollectionMaxSupply(alice, id, 10)
			if s.Has(registry.SettingLockedMaxSupply) {
				wantErr(t, supplyErr, registry.ErrMaxSupplyLocked)
			} else if supplyErr != nil {
				t.Errorf("set max supply: unexpected %v", supplyErr)
			}
		})
	}
}

func TestAccountIndexes(t *testing.T) {
	r := newTestRegistry(t)
	first := createCollection(t, r, alice)
	second := createCollection(t, r, alice)
	createCollection(t, r, bob)
	mintItem(t, r, alice, first, 3)
	mintItem(t, r, alice, first, 1)
	if err := r.Mint(alice, second, 0, bob, nil); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	items := r.AccountItems(alice)
	if len(items) != 2 || items[0].Item != 1 || items[1].Item != 3 {
		t.Errorf("unexpected alice items: %v", items)
	}
	if got := r.AccountItems(bob); len(got) != 1 || got[0].Collection != second {
		t.Errorf("unexpected bob items: %v", got)
	}
	if got := r.AccountCollections(alice); len(got) != 2 || got[0] != first || got[1] != second {
		t.Errorf("unexpected alice collections: %v", got)
	}
}

func TestTakeEvents(t *testing.T) {
	r := newTestRegistry(t)
	createCollection(t, r, alice)

	events := r.TakeEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if len(r.Events()) != 0 {
		t.Error("expected buffer drained")
	}
}

func TestForceCreate(t *testing.T) {
	l := ledger.NewLedger()
	cfg := registry.DefaultConfig()
	cfg.Root = "root"
	r := registry.New(cfg, l)

	wantErr(t, func() error { _, err := r.ForceCreate(alice, alice, registry.CollectionConfig{}); return err }(), registry.ErrNoPermission)

	id, err := r.ForceCreate("root", alice, registry.CollectionConfig{})
	if err != nil {
		t.Fatalf("force create failed: %v", err)
	}
	details, _ := r.Collection(id)
	if details.Owner != alice {
		t.Errorf("expected owner alice, got %s", details.Owner)
	}
	// No deposit is reserved on a forced create.
	if got := l.Reserved(string(alice)); !got.IsZero() {
		t.Errorf("expected no reserve, got %s", got)
	}
}
