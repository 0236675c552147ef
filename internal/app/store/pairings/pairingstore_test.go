package pairingstore_test

import (
	"errors"
	"testing"
	"time"

	pairingstore "github.com/opencircle/seekerhub/internal/app/store/pairings"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"github.com/opencircle/seekerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_DefaultsPairDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pairingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	left := fixtures.CreateSeeker(ctx, "Lee", "Left", "left@example.com")
	right := fixtures.CreateSeeker(ctx, "Rae", "Right", "right@example.com")

	created, err := store.Create(ctx, models.SeekerPairing{
		LeftID:  left.ID,
		RightID: right.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.PairDate.IsZero() {
		t.Error("expected PairDate to default to today")
	}
	if created.UnpairDate != nil {
		t.Error("new pairings must be active")
	}
	if !created.IsActive() {
		t.Error("IsActive should be true for a new pairing")
	}
}

func TestStore_Create_RejectsSelfPair(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pairingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := fixtures.CreateSeeker(ctx, "Solo", "Seeker", "solo@example.com")

	_, err := store.Create(ctx, models.SeekerPairing{LeftID: s.ID, RightID: s.ID})
	if !errors.Is(err, pairingstore.ErrSelfPair) {
		t.Fatalf("expected ErrSelfPair, got %v", err)
	}
}

func TestStore_Unpair(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pairingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	left := fixtures.CreateSeeker(ctx, "Lee", "Left", "left2@example.com")
	right := fixtures.CreateSeeker(ctx, "Rae", "Right", "right2@example.com")
	p := fixtures.CreatePairing(ctx, left.ID, right.ID)

	end := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if err := store.Unpair(ctx, p.ID, end, "moved away"); err != nil {
		t.Fatalf("Unpair failed: %v", err)
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.UnpairDate == nil || !got.UnpairDate.Equal(end) {
		t.Errorf("UnpairDate = %v, want %v", got.UnpairDate, end)
	}
	if got.Notes != "moved away" {
		t.Errorf("Notes = %q", got.Notes)
	}

	// A second unpair must fail rather than overwrite the end date.
	err = store.Unpair(ctx, p.ID, end.AddDate(0, 0, 1), "")
	if !errors.Is(err, pairingstore.ErrAlreadyEnded) {
		t.Fatalf("expected ErrAlreadyEnded, got %v", err)
	}
}

func TestStore_ActivePairsFor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pairingstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateSeeker(ctx, "Ana", "A", "a@example.com")
	b := fixtures.CreateSeeker(ctx, "Ben", "B", "b@example.com")
	c := fixtures.CreateSeeker(ctx, "Cam", "C", "c@example.com")

	active := fixtures.CreatePairing(ctx, a.ID, b.ID)
	ended := fixtures.CreatePairing(ctx, c.ID, a.ID)
	if err := store.Unpair(ctx, ended.ID, time.Now(), ""); err != nil {
		t.Fatalf("Unpair: %v", err)
	}

	got, err := store.ActivePairsFor(ctx, a.ID)
	if err != nil {
		t.Fatalf("ActivePairsFor: %v", err)
	}
	if len(got) != 1 || got[0].ID != active.ID {
		t.Fatalf("ActivePairsFor = %+v, want only the active pairing", got)
	}

	// Other returns the counterpart regardless of which side a is on.
	other, ok := got[0].Other(a.ID)
	if !ok || other != b.ID {
		t.Errorf("Other = %v %v, want %v", other, ok, b.ID)
	}

	history, err := store.HistoryFor(ctx, a.ID)
	if err != nil {
		t.Fatalf("HistoryFor: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("HistoryFor = %d pairings, want 2", len(history))
	}
}
