package seekers

import (
	"net/url"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestApplyFilters_AttributeMatch(t *testing.T) {
	filter := bson.M{}
	applyFilters(url.Values{
		"listener_trained": {"true"},
		"ride_share":       {"false"},
	}, filter)

	if got := filter["seeker.listener_trained"]; got != true {
		t.Errorf("seeker.listener_trained = %v, want true", got)
	}
	if got := filter["seeker.ride_share"]; got != false {
		t.Errorf("seeker.ride_share = %v, want false", got)
	}
	if len(filter) != 2 {
		t.Errorf("filter has %d keys, want 2", len(filter))
	}
}

func TestApplyFilters_EmptySelectionIgnored(t *testing.T) {
	filter := bson.M{}
	applyFilters(url.Values{"extra_care": {""}}, filter)
	if len(filter) != 0 {
		t.Errorf("empty selection added %d keys, want 0", len(filter))
	}
}

// The Active and Connection agent selects submit "1"/"0", which the query
// builder does not recognize, so selecting them changes nothing. Pinned so a
// fix is a deliberate change, not an accident.
func TestApplyFilters_ActiveAndConnectionAgentAreNoOps(t *testing.T) {
	for _, v := range []string{"1", "0"} {
		filter := bson.M{}
		applyFilters(url.Values{
			"is_active":           {v},
			"is_connection_agent": {v},
		}, filter)
		if len(filter) != 0 {
			t.Errorf("value %q added %d filter keys, want 0", v, len(filter))
		}
	}

	// The builder branches do exist; they just never see the UI's values.
	filter := bson.M{}
	applyFilters(url.Values{"is_active": {"true"}}, filter)
	if _, present := filter["seeker.inactive_date"]; !present {
		t.Error("is_active=true should filter on seeker.inactive_date")
	}
}

func TestFilterUI_AdvertisesNumericValuesForBrokenFilters(t *testing.T) {
	ui := filterUI(url.Values{})

	var active listFilter
	for _, f := range ui {
		if f.Param == "is_active" {
			active = f
		}
	}
	if active.Param == "" {
		t.Fatal("is_active filter missing from UI")
	}
	values := []string{active.Options[1].Value, active.Options[2].Value}
	if values[0] != "1" || values[1] != "0" {
		t.Errorf("is_active option values = %v, want [1 0]", values)
	}
}

func TestFilterQuery_CarriesSearchAndFilters(t *testing.T) {
	q := url.Values{
		"search":           {"ada"},
		"listener_trained": {"true"},
		"after":            {"cursor123"}, // paging params must not carry
	}
	got := filterQuery(q)
	want := "&listener_trained=true&search=ada"
	if got != want {
		t.Errorf("filterQuery = %q, want %q", got, want)
	}
}

func TestFilterQuery_EmptyWhenNoSelection(t *testing.T) {
	if got := filterQuery(url.Values{}); got != "" {
		t.Errorf("filterQuery = %q, want empty", got)
	}
}
