// Package mailchimp is a thin client for the Mailchimp marketing API,
// covering the three calls the back-office needs: look up a list member,
// subscribe a new member, and overwrite a member's tags.
package mailchimp

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrNotSubscribed is returned when the email has no member record on the
// configured audience list.
var ErrNotSubscribed = errors.New("mailchimp: email not subscribed")

// Member is the subset of a list member record the app cares about.
type Member struct {
	Email  string
	Status string // "subscribed", "unsubscribed", "cleaned", "pending"
	Tags   []string
}

// Tag is a tag name plus desired state for a tag-overwrite call.
type Tag struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "active" or "inactive"
}

// Service is what handlers depend on. The concrete Client talks to the
// vendor; tests substitute a fake.
type Service interface {
	SubscriptionStatus(ctx context.Context, email string) (*Member, error)
	Subscribe(ctx context.Context, firstName, lastName, email string, tags []string) error
	UpdateTags(ctx context.Context, email string, tags []Tag) error
}

// Client talks to the Mailchimp API for a single audience list.
type Client struct {
	httpClient *resty.Client
	listID     string
	logger     *zap.Logger
}

var _ Service = (*Client)(nil)

// New creates a Mailchimp client. baseURL is the datacenter endpoint, e.g.
// https://us14.api.mailchimp.com/3.0.
func New(baseURL, apiKey, listID string, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetBasicAuth("anystring", apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		listID:     listID,
		logger:     logger,
	}
}

// SubscriberHash returns the member identifier Mailchimp uses: the MD5 of
// the lowercased email address.
func SubscriberHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

type memberResponse struct {
	EmailAddress string `json:"email_address"`
	Status       string `json:"status"`
	Tags         []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"tags"`
}

type errorResponse struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// SubscriptionStatus looks up the member record for an email. Returns
// ErrNotSubscribed if the list has no member for it.
func (c *Client) SubscriptionStatus(ctx context.Context, email string) (*Member, error) {
	var body memberResponse
	var apiErr errorResponse

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&body).
		SetError(&apiErr).
		Get(fmt.Sprintf("/lists/%s/members/%s", c.listID, SubscriberHash(email)))
	if err != nil {
		c.logger.Error("mailchimp member lookup failed",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("mailchimp member lookup: %w", err)
	}

	if resp.StatusCode() == 404 {
		return nil, ErrNotSubscribed
	}
	if resp.IsError() {
		c.logger.Error("mailchimp member lookup returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("detail", apiErr.Detail),
		)
		return nil, fmt.Errorf("mailchimp member lookup: %s (status %d)", apiErr.Title, resp.StatusCode())
	}

	m := &Member{
		Email:  body.EmailAddress,
		Status: body.Status,
	}
	for _, t := range body.Tags {
		m.Tags = append(m.Tags, t.Name)
	}
	return m, nil
}

type subscribeRequest struct {
	EmailAddress string            `json:"email_address"`
	Status       string            `json:"status"`
	MergeFields  map[string]string `json:"merge_fields,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
}

// Subscribe adds a new member to the list with the given tags.
func (c *Client) Subscribe(ctx context.Context, firstName, lastName, email string, tags []string) error {
	req := subscribeRequest{
		EmailAddress: email,
		Status:       "subscribed",
		MergeFields: map[string]string{
			"FNAME": firstName,
			"LNAME": lastName,
		},
		Tags: tags,
	}

	var apiErr errorResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetError(&apiErr).
		Post(fmt.Sprintf("/lists/%s/members", c.listID))
	if err != nil {
		c.logger.Error("mailchimp subscribe failed",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("mailchimp subscribe: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("mailchimp subscribe returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("detail", apiErr.Detail),
			zap.String("email", email),
		)
		return fmt.Errorf("mailchimp subscribe: %s (status %d)", apiErr.Title, resp.StatusCode())
	}

	c.logger.Info("mailchimp member subscribed",
		zap.String("email", email),
		zap.Strings("tags", tags),
	)
	return nil
}

type updateTagsRequest struct {
	Tags []Tag `json:"tags"`
}

// UpdateTags overwrites tag state for an existing member. Callers pass the
// full configured tag set, marking the desired tags active and the rest
// inactive.
func (c *Client) UpdateTags(ctx context.Context, email string, tags []Tag) error {
	var apiErr errorResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(updateTagsRequest{Tags: tags}).
		SetError(&apiErr).
		Post(fmt.Sprintf("/lists/%s/members/%s/tags", c.listID, SubscriberHash(email)))
	if err != nil {
		c.logger.Error("mailchimp tag update failed",
			zap.Error(err),
			zap.String("email", email),
		)
		return fmt.Errorf("mailchimp tag update: %w", err)
	}
	if resp.StatusCode() == 404 {
		return ErrNotSubscribed
	}
	if resp.IsError() {
		c.logger.Error("mailchimp tag update returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("detail", apiErr.Detail),
			zap.String("email", email),
		)
		return fmt.Errorf("mailchimp tag update: %s (status %d)", apiErr.Title, resp.StatusCode())
	}

	return nil
}
