package benefitstore_test

import (
	"errors"
	"testing"
	"time"

	benefitstore "github.com/opencircle/seekerhub/internal/app/store/benefits"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"github.com/opencircle/seekerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := benefitstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.CreateType(ctx, models.SeekerBenefitType{
		Name:        "  Bus   Pass ",
		DefaultCost: 2.50,
	})
	if err != nil {
		t.Fatalf("CreateType failed: %v", err)
	}
	if created.Name != "Bus Pass" {
		t.Errorf("Name = %q, want normalized", created.Name)
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
}

func TestStore_CreateType_RejectsNegativeCost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := benefitstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.CreateType(ctx, models.SeekerBenefitType{Name: "Bad", DefaultCost: -1})
	if !errors.Is(err, benefitstore.ErrBadCost) {
		t.Fatalf("expected ErrBadCost, got %v", err)
	}
}

func TestStore_Create_DefaultsFromType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := benefitstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seeker := fixtures.CreateSeeker(ctx, "Sam", "Seeker", "sam@example.com")
	busPass := fixtures.CreateBenefitType(ctx, "Bus Pass", 2.50)

	created, err := store.Create(ctx, models.SeekerBenefit{
		SeekerID: seeker.ID,
		TypeID:   busPass.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Cost != 2.50 {
		t.Errorf("Cost = %v, want type default 2.50", created.Cost)
	}
	if created.Date.IsZero() {
		t.Error("expected Date to default to today")
	}

	// An explicit cost overrides the default.
	override, err := store.Create(ctx, models.SeekerBenefit{
		SeekerID: seeker.ID,
		TypeID:   busPass.ID,
		Date:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Cost:     5,
	})
	if err != nil {
		t.Fatalf("Create with cost failed: %v", err)
	}
	if override.Cost != 5 {
		t.Errorf("Cost = %v, want 5", override.Cost)
	}

	got, err := store.ListForSeeker(ctx, seeker.ID)
	if err != nil {
		t.Fatalf("ListForSeeker: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListForSeeker = %d rows, want 2", len(got))
	}
}

func TestStore_Create_UnknownTypeRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := benefitstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seeker := fixtures.CreateSeeker(ctx, "Sam", "Seeker", "sam@example.com")

	// An explicit cost must not bypass the type lookup: a disbursement
	// against a type that does not exist is rejected either way.
	_, err := store.Create(ctx, models.SeekerBenefit{
		SeekerID: seeker.ID,
		TypeID:   primitive.NewObjectID(),
		Cost:     5,
	})
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments for unknown type, got %v", err)
	}

	n, err := db.Collection("benefits").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("benefits count = %d, want 0", n)
	}
}

func TestStore_UpdateType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := benefitstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	bt := fixtures.CreateBenefitType(ctx, "Bus Pass", 2.50)

	err := store.UpdateType(ctx, bt.ID, benefitstore.TypeUpdate{Name: "Transit Pass", DefaultCost: 3})
	if err != nil {
		t.Fatalf("UpdateType failed: %v", err)
	}

	got, err := store.GetTypeByID(ctx, bt.ID)
	if err != nil {
		t.Fatalf("GetTypeByID: %v", err)
	}
	if got.Name != "Transit Pass" || got.DefaultCost != 3 {
		t.Errorf("after update: %+v", got)
	}
}
