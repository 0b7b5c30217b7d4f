package config

type Receiver struct {
	Port uint32 `env:"EVENTS_RECEIVER_PORT" envDefault:"8081"`
	// KafkaTopic enables the Kafka consumer when set.
	KafkaTopic string `env:"EVENTS_KAFKA_TOPIC"`
}
