package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/esgpulse/internal/models"
)

const KAFKA_DEFAULT_TOPIC = "esg-articles-analyzed"

// KafkaPublisher emits an event for every stored article. Delivery reports
// are drained in the background and only logged.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	wg       sync.WaitGroup
	once     sync.Once
}

func NewKafkaPublisher(broker, topic string) (*KafkaPublisher, error) {
	if topic == "" {
		topic = KAFKA_DEFAULT_TOPIC
	}

	slog.Info("[KafkaClient] Initializing Kafka Producer...", slog.String("broker", broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
		"enable.idempotence":  true,
		"acks":                "all",
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	kp := &KafkaPublisher{producer: p, topic: topic}
	kp.wg.Add(1)
	go kp.drainEvents()

	slog.Info("[KafkaClient] Kafka Producer initialized successfully", slog.String("topic", topic))
	return kp, nil
}

func (kp *KafkaPublisher) drainEvents() {
	defer kp.wg.Done()
	for e := range kp.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				slog.Warn("[KafkaClient] Delivery failed",
					slog.String("key", string(ev.Key)),
					slog.String("error", ev.TopicPartition.Error.Error()))
			}
		case kafka.Error:
			slog.Warn("[KafkaClient] Producer error", slog.String("error", ev.Error()))
		}
	}
}

// PublishAnalyzed sends the event for a stored article, keyed by its id.
func (kp *KafkaPublisher) PublishAnalyzed(ctx context.Context, a *models.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(models.NewArticleEvent(a))
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to marshal event: %w", err)
	}

	err = kp.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &kp.topic, Partition: kafka.PartitionAny},
		Key:            []byte(a.ID),
		Value:          data,
	}, nil)
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce message: %w", err)
	}

	slog.Debug("[KafkaClient] Published article event",
		slog.String("id", a.ID),
		slog.String("category", string(a.Category)))
	return nil
}

func (kp *KafkaPublisher) Close() {
	kp.once.Do(func() {
		slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
		if remaining := kp.producer.Flush(5000); remaining > 0 {
			slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
				slog.Int("remaining", remaining))
		}
		kp.producer.Close()
		kp.wg.Wait()
		slog.Info("[KafkaClient] Kafka producer shut down")
	})
}
