package main

import (
	"context"
	"fmt"
	"os"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/uniques-xyz/go-uniques/journal"
	"github.com/uniques-xyz/go-uniques/ledger"
	"github.com/uniques-xyz/go-uniques/registry"
)

// demo drives a scripted scenario through an in-memory registry: create a
// collection, mint and trade items, swap across collections. Passing a file
// path journals every emitted event to SQLite.
func demo(args []string) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	funds := ledger.NewLedger()
	for _, account := range []string{"alice", "bob", "carol"} {
		funds.Deposit(account, uint256.NewInt(1_000_000_000_000))
	}
	r := registry.New(registry.DefaultConfig(), funds).WithLogger(log)
	r.SetBlockNumber(1)

	if len(args) > 0 {
		store, err := journal.NewSQLiteStore(args[0])
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer store.Close()
		if err := r.AttachJournal(context.Background(), store); err != nil {
			return err
		}
	}

	punks, err := r.Create("alice", "alice", registry.CollectionConfig{
		MintSettings: registry.MintSettings{
			MintType: registry.MintTypePublic(),
			Price:    uint256.NewInt(1_000_000),
		},
	})
	if err != nil {
		return err
	}
	if err := r.SetCollectionMetadata("alice", punks, []byte("ipfs://punks")); err != nil {
		return err
	}

	witness := &registry.MintWitness{MintPrice: uint256.NewInt(1_000_000)}
	if err := r.Mint("bob", punks, 0, "bob", witness); err != nil {
		return err
	}
	if err := r.SetAttribute("alice", punks, ptr(registry.ItemID(0)), registry.CollectionOwnerNamespace(), "hat", []byte("fedora")); err != nil {
		return err
	}

	if err := r.SetPrice("bob", punks, 0, uint256.NewInt(5_000_000), nil); err != nil {
		return err
	}
	if err := r.BuyItem("carol", punks, 0, uint256.NewInt(5_000_000)); err != nil {
		return err
	}

	apes, err := r.Create("bob", "bob", registry.CollectionConfig{})
	if err != nil {
		return err
	}
	if err := r.Mint("bob", apes, 0, "bob", nil); err != nil {
		return err
	}
	if err := r.CreateSwap("carol", punks, 0, apes, ptr(registry.ItemID(0)), nil, 100); err != nil {
		return err
	}
	if err := r.ClaimSwap("bob", apes, 0, punks, 0, nil); err != nil {
		return err
	}

	fmt.Printf("emitted %d events\n", len(r.Events()))
	for _, ev := range r.Events() {
		fmt.Printf("  %s\n", ev.Name())
	}
	for _, account := range []string{"alice", "bob", "carol"} {
		fmt.Printf("%s: free=%s reserved=%s\n", account,
			funds.Free(account), funds.Reserved(account))
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

// dumpJournal prints every event recorded in a journal file.
func dumpJournal(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: uniques journal <journal.db>")
	}
	store, err := journal.NewSQLiteStore(args[0])
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	events, err := store.Read(context.Background(), "registry", 0)
	if err != nil {
		return err
	}
	for _, ev := range events {
		fmt.Printf("%4d %-28s %s\n", ev.Version, ev.Type, ev.Data)
	}
	fmt.Printf("%d events\n", len(events))
	return nil
}
