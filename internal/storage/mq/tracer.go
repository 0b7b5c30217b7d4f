package mq

import (
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("product-catalog/storage/mq")

// newKafkaTracer opens a span per produced or consumed record. It reads the global provider and
// propagator, so it must be built after telemetry.InitTracer.
func newKafkaTracer() *kotel.Tracer {
	return kotel.NewTracer(
		kotel.TracerProvider(otel.GetTracerProvider()),
		kotel.TracerPropagator(otel.GetTextMapPropagator()),
	)
}
