package mailchimp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestSubscriberHash(t *testing.T) {
	// Hash is md5 of the lowercased address, per the vendor's member id rules.
	got := SubscriberHash("Urist.McVankab@Freddiesjokes.com")
	want := SubscriberHash("urist.mcvankab@freddiesjokes.com")
	if got != want {
		t.Fatalf("hash should be case-insensitive: %q vs %q", got, want)
	}
	if len(got) != 32 {
		t.Fatalf("expected 32 hex chars, got %d", len(got))
	}
}

func TestSubscriptionStatusNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"title": "Resource Not Found", "status": 404})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "list123", zap.NewNop())
	_, err := c.SubscriptionStatus(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrNotSubscribed) {
		t.Fatalf("expected ErrNotSubscribed, got %v", err)
	}
}

func TestSubscriptionStatusFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"email_address": "jane@example.com",
			"status":        "subscribed",
			"tags": []map[string]any{
				{"id": 1, "name": "Seeker"},
				{"id": 2, "name": "Newsletter"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "list123", zap.NewNop())
	m, err := c.SubscriptionStatus(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("SubscriptionStatus: %v", err)
	}
	if m.Status != "subscribed" {
		t.Errorf("status = %q, want subscribed", m.Status)
	}
	if len(m.Tags) != 2 || m.Tags[0] != "Seeker" {
		t.Errorf("tags = %v", m.Tags)
	}
}

func TestSubscribeSendsMergeFieldsAndTags(t *testing.T) {
	var got subscribeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"email_address": got.EmailAddress, "status": "subscribed"})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "list123", zap.NewNop())
	err := c.Subscribe(context.Background(), "Jane", "Doe", "jane@example.com", []string{"Prospect"})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if got.Status != "subscribed" {
		t.Errorf("status = %q", got.Status)
	}
	if got.MergeFields["FNAME"] != "Jane" || got.MergeFields["LNAME"] != "Doe" {
		t.Errorf("merge fields = %v", got.MergeFields)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "Prospect" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestSubscribeVendorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"title":  "Member Exists",
			"status": 400,
			"detail": "jane@example.com is already a list member.",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "list123", zap.NewNop())
	err := c.Subscribe(context.Background(), "Jane", "Doe", "jane@example.com", nil)
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
}

func TestUpdateTagsOverwrite(t *testing.T) {
	var got updateTagsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "list123", zap.NewNop())
	tags := []Tag{
		{Name: "Seeker", Status: "active"},
		{Name: "Prospect", Status: "inactive"},
	}
	if err := c.UpdateTags(context.Background(), "jane@example.com", tags); err != nil {
		t.Fatalf("UpdateTags: %v", err)
	}
	if len(got.Tags) != 2 {
		t.Fatalf("sent %d tags, want 2", len(got.Tags))
	}
	if got.Tags[0].Status != "active" || got.Tags[1].Status != "inactive" {
		t.Errorf("tag statuses = %v", got.Tags)
	}
}

func TestUpdateTagsNotSubscribed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"title": "Resource Not Found", "status": 404})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "list123", zap.NewNop())
	err := c.UpdateTags(context.Background(), "gone@example.com", []Tag{{Name: "Seeker", Status: "active"}})
	if !errors.Is(err, ErrNotSubscribed) {
		t.Fatalf("expected ErrNotSubscribed, got %v", err)
	}
}
