package benefits_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/opencircle/seekerhub/internal/app/features/benefits"
	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	"github.com/opencircle/seekerhub/internal/app/system/auditlog"
	"github.com/opencircle/seekerhub/internal/domain/models"
	"github.com/opencircle/seekerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*benefits.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	audit := auditlog.New(nil, logger, auditlog.Config{Auth: "off", Admin: "off"})
	handler := benefits.NewHandler(db, errLog, audit, logger)
	return handler, testutil.NewFixtures(t, db)
}

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

func TestHandleCreateType(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := postForm(handler.HandleCreateType, "/benefits/types", url.Values{
		"name":         {"Bus Pass"},
		"default_cost": {"25.50"},
	}, nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}

	var bt models.SeekerBenefitType
	if err := fixtures.DB().Collection("benefit_types").
		FindOne(ctx, bson.M{"name_ci": "bus pass"}).Decode(&bt); err != nil {
		t.Fatalf("benefit type not found: %v", err)
	}
	if bt.DefaultCost != 25.50 {
		t.Errorf("DefaultCost = %v, want 25.50", bt.DefaultCost)
	}
}

func TestHandleCreateType_RejectsNegativeCost(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := postForm(handler.HandleCreateType, "/benefits/types", url.Values{
		"name":         {"Bus Pass"},
		"default_cost": {"-5"},
	}, nil)

	if rec.Code == http.StatusSeeOther {
		t.Fatal("negative default cost must not be stored")
	}
	n, err := fixtures.DB().Collection("benefit_types").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count types: %v", err)
	}
	if n != 0 {
		t.Errorf("benefit types count = %d, want 0", n)
	}
}

func TestHandleEditType(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	bt := fixtures.CreateBenefitType(ctx, "Bus Pass", 25)

	rec := postForm(handler.HandleEditType, "/benefits/types/"+bt.ID.Hex()+"/edit", url.Values{
		"name":         {"Metro Pass"},
		"default_cost": {"30"},
	}, map[string]string{"id": bt.ID.Hex()})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}

	var got models.SeekerBenefitType
	if err := fixtures.DB().Collection("benefit_types").
		FindOne(ctx, bson.M{"_id": bt.ID}).Decode(&got); err != nil {
		t.Fatalf("reload type: %v", err)
	}
	if got.Name != "Metro Pass" || got.DefaultCost != 30 {
		t.Errorf("got %q/%v, want Metro Pass/30", got.Name, got.DefaultCost)
	}
}

func TestHandleCreateDisbursement_DefaultsCostFromType(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seeker := fixtures.CreateSeeker(ctx, "Ada", "Lovelace", "ada@example.com")
	bt := fixtures.CreateBenefitType(ctx, "Bus Pass", 25)

	rec := postForm(handler.HandleCreateDisbursement, "/benefits", url.Values{
		"seeker_id": {seeker.ID.Hex()},
		"type_id":   {bt.ID.Hex()},
	}, nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}

	var b models.SeekerBenefit
	if err := fixtures.DB().Collection("benefits").
		FindOne(ctx, bson.M{"seeker_id": seeker.ID}).Decode(&b); err != nil {
		t.Fatalf("disbursement not found: %v", err)
	}
	if b.Cost != 25 {
		t.Errorf("Cost = %v, want the type default 25", b.Cost)
	}
	if b.Date.IsZero() {
		t.Error("date should default to today")
	}
}

func TestHandleCreateDisbursement_RejectsProspect(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prospect := fixtures.CreateProspect(ctx, "Ada", "Lovelace", "ada@example.com")
	bt := fixtures.CreateBenefitType(ctx, "Bus Pass", 25)

	rec := postForm(handler.HandleCreateDisbursement, "/benefits", url.Values{
		"seeker_id": {prospect.ID.Hex()},
		"type_id":   {bt.ID.Hex()},
	}, nil)

	if rec.Code == http.StatusSeeOther {
		t.Error("recording a benefit for a prospect must not succeed")
	}
}

func TestServeExport_StreamsWorkbook(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seeker := fixtures.CreateSeeker(ctx, "Ada", "Lovelace", "ada@example.com")
	bt := fixtures.CreateBenefitType(ctx, "Bus Pass", 25)
	fixtures.CreateBenefit(ctx, seeker.ID, bt.ID, time.Now().UTC(), 25)

	req := testutil.NewRequest("GET", "/benefits/export")
	req = testutil.WithUser(req, testutil.AdminUser())
	rec := httptest.NewRecorder()
	handler.ServeExport(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q, want an xlsx content type", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, ".xlsx") {
		t.Errorf("Content-Disposition = %q, want an .xlsx attachment", cd)
	}

	body, err := io.ReadAll(rec.Result().Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	// XLSX files are zip archives.
	if len(body) < 4 || body[0] != 'P' || body[1] != 'K' {
		t.Error("body does not look like a zip archive")
	}
}
