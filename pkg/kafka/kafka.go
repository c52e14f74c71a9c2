package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const ReservationTopic = "reservation-events"

type Config struct {
	Addrs   []string      `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
	Topic   string        `yaml:"topic" envconfig:"KAFKA_TOPIC" default:"reservation-events"`
	Timeout time.Duration `yaml:"timeout" envconfig:"KAFKA_TIMEOUT" default:"3s"`
}

func (c Config) Enabled() bool { return len(c.Addrs) > 0 }

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(cfg.Addrs, ProducerConfig(cfg))
}

// ProducerConfig waits for all in-sync replicas; events are keyed by room so
// one room's history stays ordered within a partition.
func ProducerConfig(cfg Config) *sarama.Config {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Partitioner = sarama.NewHashPartitioner
	if cfg.Timeout > 0 {
		defaultCfg.Producer.Timeout = cfg.Timeout
		defaultCfg.Net.DialTimeout = cfg.Timeout
	}
	return defaultCfg
}
