package humanstore_test

import (
	"errors"
	"testing"

	humanstore "github.com/opencircle/seekerhub/internal/app/store/humans"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"github.com/opencircle/seekerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := humanstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Human{
		FirstNames:  "  Jane   Q ",
		LastNames:   "Doe",
		Email:       "Jane.Doe@Example.COM",
		PhoneNumber: " 555-0100 ",
		City:        "Columbia",
		State:       "MO",
		Role:        models.RoleSeeker, // ignored; new records are prospects
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Role != models.RoleProspect {
		t.Errorf("Role: got %q, want prospect", created.Role)
	}
	if created.FirstNames != "Jane Q" {
		t.Errorf("FirstNames: got %q, want %q", created.FirstNames, "Jane Q")
	}
	if created.Email != "jane.doe@example.com" {
		t.Errorf("Email: got %q, want lowercased", created.Email)
	}
	if created.Seeker != nil || created.Partner != nil {
		t.Error("new prospects must not carry role profiles")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := humanstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	if _, err := store.Create(ctx, models.Human{FirstNames: "A", LastNames: "One", Email: "dup@example.com"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.Human{FirstNames: "B", LastNames: "Two", Email: "DUP@example.com"})
	if !errors.Is(err, humanstore.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_UpdateContact_BlankEmailUnsetsField(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := humanstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	// Two records without an email: the sparse unique index skips missing
	// fields, so both inserts succeed.
	first, err := store.Create(ctx, models.Human{FirstNames: "No", LastNames: "Mail"})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	second, err := store.Create(ctx, models.Human{FirstNames: "Also", LastNames: "None"})
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	// Editing both with a blank email must not make them collide on "".
	if err := store.UpdateContact(ctx, first.ID, humanstore.ContactUpdate{FirstNames: "No", LastNames: "Mail"}); err != nil {
		t.Fatalf("first UpdateContact failed: %v", err)
	}
	if err := store.UpdateContact(ctx, second.ID, humanstore.ContactUpdate{FirstNames: "Also", LastNames: "None"}); err != nil {
		t.Fatalf("second UpdateContact failed: %v", err)
	}

	var raw bson.M
	if err := db.Collection("humans").FindOne(ctx, bson.M{"_id": second.ID}).Decode(&raw); err != nil {
		t.Fatalf("reload record: %v", err)
	}
	if _, exists := raw["email"]; exists {
		t.Error("blank email should remove the field, not store \"\"")
	}
}

func TestStore_UpgradeToSeeker(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := humanstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prospect := fixtures.CreateProspect(ctx, "Pat", "Prospect", "pat@example.com")

	err := store.UpgradeToSeeker(ctx, prospect.ID, models.SeekerProfile{ReadyToPair: true})
	if err != nil {
		t.Fatalf("UpgradeToSeeker failed: %v", err)
	}

	got, err := store.GetSeekerByID(ctx, prospect.ID)
	if err != nil {
		t.Fatalf("GetSeekerByID after upgrade: %v", err)
	}
	if got.Seeker == nil {
		t.Fatal("expected seeker profile after upgrade")
	}
	if !got.Seeker.ReadyToPair {
		t.Error("expected ReadyToPair to survive upgrade")
	}
	if got.Seeker.EnrolledAt.IsZero() {
		t.Error("expected EnrolledAt to default")
	}

	// Enrolling twice must fail: the record is no longer a prospect.
	err = store.UpgradeToSeeker(ctx, prospect.ID, models.SeekerProfile{})
	if !errors.Is(err, humanstore.ErrNotProspect) {
		t.Fatalf("expected ErrNotProspect on repeat enroll, got %v", err)
	}
}

func TestStore_MarkAsCommunityPartner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := humanstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prospect := fixtures.CreateProspect(ctx, "Org", "Contact", "contact@example.org")

	if err := store.MarkAsCommunityPartner(ctx, prospect.ID, "Local Shelter"); err != nil {
		t.Fatalf("MarkAsCommunityPartner failed: %v", err)
	}

	got, err := store.GetPartnerByID(ctx, prospect.ID)
	if err != nil {
		t.Fatalf("GetPartnerByID after mark: %v", err)
	}
	if got.Partner == nil || got.Partner.Organization != "Local Shelter" {
		t.Errorf("Partner profile = %+v", got.Partner)
	}

	// A partner cannot be enrolled as a seeker.
	err = store.UpgradeToSeeker(ctx, prospect.ID, models.SeekerProfile{})
	if !errors.Is(err, humanstore.ErrNotProspect) {
		t.Fatalf("expected ErrNotProspect for partner, got %v", err)
	}
}

func TestStore_DowngradeToProspect(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := humanstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seeker := fixtures.CreateSeeker(ctx, "Sam", "Seeker", "sam@example.com")
	note := fixtures.CreateNote(ctx, seeker.ID, "intake call", "Test Admin")

	if err := store.DowngradeToProspect(ctx, seeker.ID); err != nil {
		t.Fatalf("DowngradeToProspect failed: %v", err)
	}

	got, err := store.GetProspectByID(ctx, seeker.ID)
	if err != nil {
		t.Fatalf("GetProspectByID after downgrade: %v", err)
	}
	if got.Seeker != nil {
		t.Error("expected seeker profile to be removed")
	}

	// Linked records keep pointing at the same _id.
	count, err := db.Collection("human_notes").CountDocuments(ctx, map[string]any{"human_id": note.HumanID})
	if err != nil {
		t.Fatalf("count notes: %v", err)
	}
	if count != 1 {
		t.Errorf("notes after downgrade: got %d, want 1", count)
	}

	err = store.DowngradeToProspect(ctx, seeker.ID)
	if !errors.Is(err, humanstore.ErrNotSeeker) {
		t.Fatalf("expected ErrNotSeeker on repeat downgrade, got %v", err)
	}
}

func TestStore_GetProspectByID_ExcludesOtherRoles(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := humanstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seeker := fixtures.CreateSeeker(ctx, "Sam", "Seeker", "sam2@example.com")

	_, err := store.GetProspectByID(ctx, seeker.ID)
	if err != mongo.ErrNoDocuments {
		t.Fatalf("expected ErrNoDocuments for seeker, got %v", err)
	}
}
