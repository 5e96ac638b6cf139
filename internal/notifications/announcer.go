package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vaadhorim/portal/internal/telemetry/metrics"
	"github.com/vaadhorim/portal/pkg"

	log "github.com/sirupsen/logrus"
)

// Announcer POSTs announcement payloads to subscription endpoints.
// Delivery is best effort: a dead endpoint is logged and counted,
// never retried here.
type Announcer struct {
	httpClient *http.Client
	metrics    *metrics.Manager
}

func NewAnnouncer(httpClient *http.Client, metrics *metrics.Manager) *Announcer {
	return &Announcer{
		httpClient: httpClient,
		metrics:    metrics,
	}
}

// Announce sends the payload to every subscription and returns how
// many deliveries succeeded and how many failed.
func (a *Announcer) Announce(
	ctx context.Context,
	announcement Announcement,
	subs []Subscription,
) (sent int, failed int) {
	payload, err := json.Marshal(announcement)
	if err != nil {
		log.Errorf("announce, marshal payload: %s", err)
		return 0, len(subs)
	}

	for _, sub := range subs {
		if err := a.post(ctx, sub.Endpoint, payload); err != nil {
			log.Errorf("announce to subscription %s: %s", sub.ID, err)
			failed++
			continue
		}
		sent++
	}

	a.metrics.CounterNotificationsSent.Add(float64(sent))
	a.metrics.CounterNotificationsFailed.Add(float64(failed))

	return sent, failed
}

func (a *Announcer) post(ctx context.Context, endpoint string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", pkg.ContentType.JSON)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Errorf("announce, close response body: %s", err)
		}
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("endpoint returned %d", resp.StatusCode)
	}

	return nil
}
