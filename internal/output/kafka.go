package output

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"

	"github.com/restodata/restogen/internal/models"
)

// KafkaOutput publishes every document as one JSON message on a topic
// per collection.
type KafkaOutput struct {
	producer    sarama.SyncProducer
	topicPrefix string
}

func NewKafkaOutput(cfg *models.Config) (*KafkaOutput, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	brokerList := strings.Split(cfg.KafkaBrokerList, ",")

	producer, err := sarama.NewSyncProducer(brokerList, saramaConfig)
	if err != nil {
		return nil, &SinkError{Sink: "kafka", Err: fmt.Errorf("creating producer: %w", err)}
	}

	log.WithField("brokers", brokerList).Info("kafka producer created")
	return &KafkaOutput{producer: producer, topicPrefix: cfg.KafkaTopicPrefix}, nil
}

func (k *KafkaOutput) WriteDataset(ctx context.Context, dataset *models.Dataset) error {
	for _, collection := range dataset.Collections() {
		topic := k.topicPrefix + collection.Name
		for _, doc := range collection.Docs {
			msg, err := json.Marshal(doc)
			if err != nil {
				return &SinkError{Sink: "kafka", Err: fmt.Errorf("encoding %s document: %w", collection.Name, err)}
			}
			_, _, err = k.producer.SendMessage(&sarama.ProducerMessage{
				Topic: topic,
				Value: sarama.ByteEncoder(msg),
			})
			if err != nil {
				return &SinkError{Sink: "kafka", Err: fmt.Errorf("publishing to %s: %w", topic, err)}
			}
		}
		log.WithFields(logrus.Fields{"topic": topic, "records": len(collection.Docs)}).Info("published collection")
	}
	return nil
}

func (k *KafkaOutput) Close() error {
	if k.producer != nil {
		return k.producer.Close()
	}
	return nil
}
