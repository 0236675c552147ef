package seekers

import (
	"net/http/httptest"
	"testing"
	"time"

	uierrors "github.com/opencircle/seekerhub/internal/app/features/errors"
	"github.com/opencircle/seekerhub/internal/app/system/auditlog"
	"github.com/opencircle/seekerhub/internal/app/system/mailtags"
	"github.com/opencircle/seekerhub/internal/testutil"
	"go.uber.org/zap"
)

func TestBuildEditData_ListsBenefits(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	audit := auditlog.New(nil, logger, auditlog.Config{Auth: "off", Admin: "off"})
	tags := mailtags.New([]string{"Seeker"})
	handler := NewHandler(db, errLog, audit, nil, tags, nil, logger)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seeker := fixtures.CreateSeeker(ctx, "Sam", "Seeker", "sam@example.com")
	busPass := fixtures.CreateBenefitType(ctx, "Bus Pass", 2.50)
	fixtures.CreateBenefit(ctx, seeker.ID, busPass.ID, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 2.50)
	fixtures.CreateBenefit(ctx, seeker.ID, busPass.ID, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), 5)

	req := httptest.NewRequest("GET", "/seekers/"+seeker.ID.Hex()+"/edit", nil)
	data := handler.buildEditData(ctx, req, &seeker)

	if len(data.Benefits) != 2 {
		t.Fatalf("Benefits = %d rows, want 2", len(data.Benefits))
	}
	// Most recent disbursement first.
	if data.Benefits[0].Date != "Aug 15, 2026" {
		t.Errorf("Benefits[0].Date = %q, want Aug 15, 2026", data.Benefits[0].Date)
	}
	if data.Benefits[0].Cost != 5 {
		t.Errorf("Benefits[0].Cost = %v, want 5", data.Benefits[0].Cost)
	}
	if data.Benefits[0].TypeName != "Bus Pass" {
		t.Errorf("Benefits[0].TypeName = %q, want Bus Pass", data.Benefits[0].TypeName)
	}
}
