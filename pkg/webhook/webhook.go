package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/db/models"
	"github.com/craftplan/craftplan/pkg/store"
	"github.com/craftplan/craftplan/pkg/version"
	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
)

// Hook is a project webhook.
type Hook struct {
	models.Webhook
	ContentType ContentType
	Events      []Event
}

// Delivery is a webhook delivery.
type Delivery struct {
	models.WebhookDelivery
	Event Event
}

// client refuses connections to private address space and ignores
// redirects, so a validated URL cannot be redirected somewhere internal.
var client = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, _, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err //nolint:wrapcheck
			}

			if ip := net.ParseIP(host); ip != nil {
				if err := ValidateIPBeforeDial(ip); err != nil {
					return nil, fmt.Errorf("blocked connection to private IP: %w", err)
				}
			}

			dialer := &net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}
			return dialer.DialContext(ctx, network, addr)
		},
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	},
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// encodeBody renders the payload in the hook's content type.
func encodeBody(contentType ContentType, payload interface{}) (string, error) {
	switch contentType {
	case ContentTypeJSON:
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			return "", err //nolint:wrapcheck
		}
		return buf.String(), nil
	case ContentTypeForm:
		v, err := query.Values(payload)
		if err != nil {
			return "", err //nolint:wrapcheck
		}
		return v.Encode(), nil
	default:
		return "", ErrInvalidContentType
	}
}

// signature returns the hex HMAC-SHA256 of body under secret, prefixed for
// the signature header.
func signature(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body)) // nolint: errcheck
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func flattenHeaders(h http.Header) string {
	var sb strings.Builder
	for k, v := range h {
		sb.WriteString(k + ": " + v[0] + "\n")
	}
	return sb.String()
}

// SendWebhook delivers one event to one hook and records the delivery,
// including failed attempts.
func SendWebhook(ctx context.Context, w models.Webhook, event Event, payload interface{}) error {
	dbx := db.FromContext(ctx)
	datastore := store.FromContext(ctx)

	body, err := encodeBody(ContentType(w.ContentType), payload) //nolint:gosec
	if err != nil {
		return err
	}

	id, err := uuid.NewUUID()
	if err != nil {
		return err //nolint:wrapcheck
	}

	headers := http.Header{}
	headers.Add("Content-Type", ContentType(w.ContentType).String()) //nolint:gosec
	headers.Add("User-Agent", "CraftPlan/"+version.Version)
	headers.Add("X-CraftPlan-Event", event.String())
	headers.Add("X-CraftPlan-Delivery", id.String())
	if w.Secret != "" {
		headers.Add("X-CraftPlan-Signature", signature(w.Secret, body))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, strings.NewReader(body))
	if err != nil {
		return err //nolint:wrapcheck
	}
	req.Header = headers

	res, reqErr := client.Do(req)

	resStatus := 0
	resHeaders := ""
	resBody := ""
	if res != nil {
		resStatus = res.StatusCode
		resHeaders = flattenHeaders(res.Header)
		if res.Body != nil {
			defer res.Body.Close() // nolint: errcheck
			b, err := io.ReadAll(res.Body)
			if err != nil {
				return err //nolint:wrapcheck
			}
			resBody = string(b)
		}
	}

	return db.WrapError(datastore.CreateWebhookDelivery(ctx, dbx, id, w.ID, int(event), w.URL, http.MethodPost, reqErr, flattenHeaders(headers), body, resStatus, resHeaders, resBody))
}

// SendEvent sends a webhook event to all active hooks of the payload's
// project that subscribe to the event.
func SendEvent(ctx context.Context, payload EventPayload) error {
	dbx := db.FromContext(ctx)
	datastore := store.FromContext(ctx)
	webhooks, err := datastore.GetWebhooksByProjectIDWhereEvent(ctx, dbx, payload.ProjectID(), []int{int(payload.Event())})
	if err != nil {
		return db.WrapError(err)
	}

	for _, w := range webhooks {
		if err := SendWebhook(ctx, w, payload.Event(), payload); err != nil {
			return err
		}
	}

	return nil
}

func projectURL(publicURL string, projectID int64) string {
	return fmt.Sprintf("%s/v1/projects/%d", publicURL, projectID)
}
