package event

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

// RegisteredMessage is the reply body of an acknowledged event.
const RegisteredMessage = "Event successfully registered"

// Receiver is the HTTP endpoint of the events service. It accepts one product event as a
// CloudEvent in binary or structured mode and replies once the event is recorded.
type Receiver struct {
	logger   *slog.Logger
	recorder EventRecorder
}

func NewReceiver(logger *slog.Logger, recorder EventRecorder) *Receiver {
	return &Receiver{
		logger:   logger,
		recorder: recorder,
	}
}

type receiverReply struct {
	Message string `json:"message"`
}

func (rc *Receiver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ce, err := cehttp.NewEventFromHTTPRequest(r)
	if err != nil {
		rc.reply(w, http.StatusBadRequest, "Invalid cloud event")
		return
	}

	if !IsProductCloudEventType(ce.Type()) {
		rc.reply(w, http.StatusBadRequest, "Unsupported event type "+ce.Type())
		return
	}

	var ev model.ProductEvent
	if err := ce.DataAs(&ev); err != nil {
		rc.reply(w, http.StatusBadRequest, "Invalid product event")
		return
	}

	if err := rc.recorder.Record(ctx, ev); err != nil {
		rc.logger.ErrorContext(ctx, "failed to record product event",
			slog.String("ce_id", ce.ID()),
			slog.Any("error", err),
		)

		if errors.Is(err, apperr.InvalidProductEventErr) {
			rc.reply(w, http.StatusBadRequest, "Invalid product event")
			return
		}
		rc.reply(w, http.StatusInternalServerError, "Could not record product event")
		return
	}

	rc.reply(w, http.StatusOK, RegisteredMessage)
}

func (rc *Receiver) reply(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(receiverReply{Message: msg})
}
