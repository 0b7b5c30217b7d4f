package config

type Kafka struct {
	Addresses []string `env:"KAFKA_ADDRESSES" envSeparator:","`
	Group     string   `env:"KAFKA_GROUP" envDefault:"product-events"`
}
