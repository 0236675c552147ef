package bootstrap

import (
	"testing"

	"github.com/opencircle/seekerhub/internal/domain/models"
	"github.com/opencircle/seekerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestStartup_SeedsAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	appCfg := AppConfig{
		AdminName:     "Site Admin",
		AdminEmail:    "admin@test.com",
		AdminPassword: "correct horse battery staple",
	}

	if err := Startup(ctx, nil, appCfg, deps, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}

	var user models.StaffUser
	err := db.Collection("staff_users").FindOne(ctx, bson.M{"email": "admin@test.com"}).Decode(&user)
	if err != nil {
		t.Fatalf("failed to find seeded admin: %v", err)
	}
	if user.Role != models.StaffRoleAdmin {
		t.Errorf("expected role %q, got %q", models.StaffRoleAdmin, user.Role)
	}
	if user.Status != models.StaffStatusActive {
		t.Errorf("expected status %q, got %q", models.StaffStatusActive, user.Status)
	}

	// Running again must not duplicate or overwrite the user.
	if err := Startup(ctx, nil, appCfg, deps, testLogger()); err != nil {
		t.Fatalf("second Startup failed: %v", err)
	}
	n, err := db.Collection("staff_users").CountDocuments(ctx, bson.M{"email": "admin@test.com"})
	if err != nil {
		t.Fatalf("count staff: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 staff user, got %d", n)
	}
}

func TestStartup_NoSeedWithoutCredentials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}

	if err := Startup(ctx, nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}
	n, err := db.Collection("staff_users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count staff: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no staff users, got %d", n)
	}
}

func TestSplitTags(t *testing.T) {
	got := splitTags(" Newsletter, Seeker ,,Events ")
	want := []string{"Newsletter", "Seeker", "Events"}
	if len(got) != len(want) {
		t.Fatalf("splitTags returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if splitTags("") != nil {
		t.Error("empty input should yield nil")
	}
}

func TestValidateConfig_RejectsPartialMailchimp(t *testing.T) {
	appCfg := AppConfig{
		MongoURI:        "mongodb://localhost:27017",
		MailchimpAPIKey: "key-only",
	}
	if err := ValidateConfig(nil, appCfg, testLogger()); err == nil {
		t.Error("half-configured Mailchimp settings should be rejected")
	}

	appCfg.MailchimpBaseURL = "https://us1.api.mailchimp.com/3.0"
	appCfg.MailchimpListID = "abc123"
	if err := ValidateConfig(nil, appCfg, testLogger()); err != nil {
		t.Errorf("fully configured Mailchimp settings rejected: %v", err)
	}
}
