package humans_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	"github.com/opencircle/seekerhub/internal/app/features/humans"
	"github.com/opencircle/seekerhub/internal/app/system/auditlog"
	"github.com/opencircle/seekerhub/internal/app/system/mailtags"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"github.com/opencircle/seekerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*humans.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	audit := auditlog.New(nil, logger, auditlog.Config{Auth: "off", Admin: "off"})
	tags := mailtags.New([]string{"Prospect", "Seeker"})
	handler := humans.NewHandler(db, errLog, audit, nil, tags, nil, logger)
	return handler, testutil.NewFixtures(t, db)
}

// postForm invokes an authenticated POST. Rendering paths are wrapped in
// recover so a template problem does not mask the behavior under test.
func postForm(h http.HandlerFunc, target string, form url.Values, params map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, testutil.AdminUser())
	for k, v := range params {
		req = testutil.WithChiURLParam(req, k, v)
	}
	rec := httptest.NewRecorder()

	func() {
		defer func() { _ = recover() }()
		h(rec, req)
	}()
	return rec
}

func TestHandleCreate_StoresProspect(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := postForm(handler.HandleCreate, "/humans", url.Values{
		"first_names": {"Ada"},
		"last_names":  {"Lovelace"},
		"email":       {"ada@example.com"},
		"city":        {"London"},
	}, nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/humans/") || !strings.Contains(loc, "/edit") {
		t.Errorf("Location = %q, want the edit screen for the new record", loc)
	}

	var hu models.Human
	err := fixtures.DB().Collection("humans").
		FindOne(ctx, bson.M{"email": "ada@example.com"}).Decode(&hu)
	if err != nil {
		t.Fatalf("created record not found: %v", err)
	}
	if hu.Role != models.RoleProspect {
		t.Errorf("Role = %q, want prospect", hu.Role)
	}
	if hu.FullNameCI != "ada lovelace" {
		t.Errorf("FullNameCI = %q, want folded full name", hu.FullNameCI)
	}
}

func TestHandleCreate_MissingNames(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := postForm(handler.HandleCreate, "/humans", url.Values{
		"first_names": {""},
		"last_names":  {"Lovelace"},
	}, nil)

	if rec.Code == http.StatusSeeOther {
		t.Fatal("missing names must not create a record")
	}
	n, err := fixtures.DB().Collection("humans").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("humans count = %d, want 0", n)
	}
}

func TestHandleCreate_PopupPreserved(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postForm(handler.HandleCreate, "/humans", url.Values{
		"first_names": {"Grace"},
		"last_names":  {"Hopper"},
		"popup":       {"1"},
	}, nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "popup=1") {
		t.Errorf("Location = %q, want popup mode preserved", loc)
	}
}

func TestHandleEdit_UpdatesContactAndAppendsNote(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hu := fixtures.CreateProspect(ctx, "Ada", "Lovelace", "ada@example.com")

	rec := postForm(handler.HandleEdit, "/humans/"+hu.ID.Hex()+"/edit", url.Values{
		"first_names": {"Ada"},
		"last_names":  {"King"},
		"email":       {"ada@example.com"},
		"new_note":    {"Met at the outreach table."},
	}, map[string]string{"id": hu.ID.Hex()})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}

	var got models.Human
	if err := fixtures.DB().Collection("humans").
		FindOne(ctx, bson.M{"_id": hu.ID}).Decode(&got); err != nil {
		t.Fatalf("reload record: %v", err)
	}
	if got.LastNames != "King" {
		t.Errorf("LastNames = %q, want King", got.LastNames)
	}

	var note models.HumanNote
	if err := fixtures.DB().Collection("human_notes").
		FindOne(ctx, bson.M{"human_id": hu.ID}).Decode(&note); err != nil {
		t.Fatalf("load note: %v", err)
	}
	if note.Note != "Met at the outreach table." {
		t.Errorf("Note = %q, want the submitted text", note.Note)
	}
	if note.AddedBy != testutil.AdminUser().Name {
		t.Errorf("AddedBy = %q, want the session user's display name %q", note.AddedBy, testutil.AdminUser().Name)
	}
}

func TestServeEdit_SeekerRedirects(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hu := fixtures.CreateSeeker(ctx, "Ada", "Lovelace", "ada@example.com")

	req := testutil.NewRequest("GET", "/humans/"+hu.ID.Hex()+"/edit")
	req = testutil.WithUser(req, testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "id", hu.ID.Hex())
	rec := httptest.NewRecorder()
	handler.ServeEdit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	want := "/seekers/" + hu.ID.Hex() + "/edit"
	if loc := rec.Header().Get("Location"); loc != want {
		t.Errorf("Location = %q, want %q", loc, want)
	}
}

func TestHandleEnroll_UpgradesProspect(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	hu := fixtures.CreateProspect(ctx, "Ada", "Lovelace", "ada@example.com")

	rec := postForm(handler.HandleEnroll, "/humans/"+hu.ID.Hex()+"/enroll", url.Values{
		"listener_trained": {"on"},
		"ready_to_pair":    {"on"},
	}, map[string]string{"id": hu.ID.Hex()})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	want := "/seekers/" + hu.ID.Hex() + "/edit?notice=Enrolled"
	if loc := rec.Header().Get("Location"); loc != want {
		t.Errorf("Location = %q, want %q", loc, want)
	}

	var got models.Human
	if err := fixtures.DB().Collection("humans").
		FindOne(ctx, bson.M{"_id": hu.ID}).Decode(&got); err != nil {
		t.Fatalf("reload record: %v", err)
	}
	if got.Role != models.RoleSeeker {
		t.Fatalf("Role = %q, want seeker", got.Role)
	}
	if got.Seeker == nil || !got.Seeker.ListenerTrained || !got.Seeker.ReadyToPair {
		t.Error("seeker profile missing submitted checkboxes")
	}

	// Enrolling an already-enrolled record must fail.
	rec = postForm(handler.HandleEnroll, "/humans/"+hu.ID.Hex()+"/enroll",
		url.Values{}, map[string]string{"id": hu.ID.Hex()})
	if rec.Code == http.StatusSeeOther {
		t.Error("second enrollment must not succeed")
	}
}

func TestHandleBulk_EnrollCountsOnlyProspects(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateProspect(ctx, "Ada", "Lovelace", "ada@example.com")
	b := fixtures.CreateProspect(ctx, "Grace", "Hopper", "grace@example.com")
	c := fixtures.CreateSeeker(ctx, "Joan", "Clarke", "joan@example.com")

	rec := postForm(handler.HandleBulk, "/humans/bulk", url.Values{
		"action": {"enroll"},
		"ids":    {a.ID.Hex(), b.ID.Hex(), c.ID.Hex()},
	}, nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, url.QueryEscape("Enrolled 2 of 3 selected.")) {
		t.Errorf("Location = %q, want notice reporting 2 of 3", loc)
	}

	n, err := fixtures.DB().Collection("humans").
		CountDocuments(ctx, bson.M{"role": models.RoleSeeker})
	if err != nil {
		t.Fatalf("count seekers: %v", err)
	}
	if n != 3 {
		t.Errorf("seeker count = %d, want 3", n)
	}
}

func TestHandleBulk_NoSelection(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postForm(handler.HandleBulk, "/humans/bulk", url.Values{
		"action": {"enroll"},
	}, nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "No") {
		t.Errorf("Location = %q, want a no-selection notice", loc)
	}
}
