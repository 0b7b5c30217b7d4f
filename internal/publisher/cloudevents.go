package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"
	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/product-catalog/internal/event"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
	"github.com/tuanvumaihuynh/product-catalog/pkg/msgheader"
)

var _ Publisher = (*CloudEventsPublisher)(nil)

// CloudEventsPublisher sends each event as a binary mode CloudEvent to the events service
// receiver and waits for its reply.
type CloudEventsPublisher struct {
	client    *http.Client
	targetURL string
	timeout   time.Duration
}

func NewCloudEventsPublisher(client *http.Client, targetURL string, timeout time.Duration) *CloudEventsPublisher {
	if client == nil {
		client = http.DefaultClient
	}
	return &CloudEventsPublisher{
		client:    client,
		targetURL: targetURL,
		timeout:   timeout,
	}
}

func (p *CloudEventsPublisher) Publish(ctx context.Context, product model.Product, eventType model.EventType, actor, correlationID string) error {
	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	ev := model.NewProductEvent(product, eventType, actor, correlationID)

	ce := cloudevents.NewEvent()
	ce.SetID(uuid.NewString())
	ce.SetSource(event.CloudEventSource)
	ce.SetType(event.CloudEventType(eventType))
	ce.SetSubject(product.ID)
	ce.SetTime(time.Now())
	if err := ce.SetData(cloudevents.ApplicationJSON, ev); err != nil {
		return publishFailure(fmt.Errorf("set cloud event data: %w", err))
	}

	req, err := cehttp.NewHTTPRequestFromEvent(ctx, p.targetURL, ce)
	if err != nil {
		return publishFailure(fmt.Errorf("create request: %w", err))
	}

	for k, v := range msgheader.BuildHeaders(correlationid.NewContext(ctx, correlationID)) {
		req.Header.Set(k, v)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return publishFailure(fmt.Errorf("send cloud event: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return publishFailure(fmt.Errorf("events receiver replied %d: %s", resp.StatusCode, replyMessage(resp.Body)))
}

func replyMessage(body io.Reader) string {
	var reply struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&reply); err != nil || reply.Message == "" {
		return "no message"
	}
	return reply.Message
}
