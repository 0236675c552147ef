package seekers

import (
	"testing"

	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	"github.com/opencircle/seekerhub/internal/app/system/auditlog"
	"github.com/opencircle/seekerhub/internal/app/system/mailtags"
	"github.com/opencircle/seekerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestRideMatchesFor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := NewHandler(db, uierrors.NewErrorLogger(logger),
		auditlog.New(nil, logger, auditlog.Config{Auth: "off", Admin: "off"}),
		nil, mailtags.New(nil), nil, logger)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rider := fixtures.CreateSeeker(ctx, "Ada", "Lovelace", "ada@example.com")

	// Same city, offers rides: should match.
	driver := fixtures.CreateSeeker(ctx, "Grace", "Hopper", "grace@example.com")
	// Same city but does not offer rides: should not match.
	fixtures.CreateSeeker(ctx, "Joan", "Clarke", "joan@example.com")
	// Offers rides but inactive: should not match.
	retired := fixtures.CreateInactiveSeeker(ctx, "Mary", "Jackson", "mary@example.com")

	humansColl := fixtures.DB().Collection("humans")
	for _, id := range []any{driver.ID, retired.ID} {
		if _, err := humansColl.UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"seeker.ride_share": true}}); err != nil {
			t.Fatalf("set ride_share: %v", err)
		}
	}
	matches, err := h.rideMatchesFor(ctx, &rider)
	if err != nil {
		t.Fatalf("rideMatchesFor: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].FullName != "Grace Hopper" {
		t.Errorf("match = %q, want Grace Hopper", matches[0].FullName)
	}
}

func TestRideMatchesFor_ExcludesSelf(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := NewHandler(db, uierrors.NewErrorLogger(logger),
		auditlog.New(nil, logger, auditlog.Config{Auth: "off", Admin: "off"}),
		nil, mailtags.New(nil), nil, logger)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rider := fixtures.CreateSeeker(ctx, "Ada", "Lovelace", "ada@example.com")
	if _, err := fixtures.DB().Collection("humans").UpdateOne(ctx,
		bson.M{"_id": rider.ID},
		bson.M{"$set": bson.M{"seeker.ride_share": true}}); err != nil {
		t.Fatalf("set ride_share: %v", err)
	}

	matches, err := h.rideMatchesFor(ctx, &rider)
	if err != nil {
		t.Fatalf("rideMatchesFor: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0 (self excluded)", len(matches))
	}
}
