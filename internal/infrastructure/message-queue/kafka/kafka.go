package kafka

import (
	"context"
	"time"

	"github.com/alimikegami/quadraplay/payment-service/config"
	"github.com/segmentio/kafka-go"
)

const writeTimeout = 5 * time.Second

// Producer writes payment events to the leader of the configured topic partition.
type Producer struct {
	conn *kafka.Conn
}

func CreateKafkaProducer(config *config.Config) (*Producer, error) {
	conn, err := kafka.DialLeader(context.Background(), "tcp", config.KafkaConfig.BrokerAddress, config.KafkaConfig.BrokerTopic, config.KafkaConfig.BrokerPartition)
	if err != nil {
		return nil, err
	}

	return &Producer{conn: conn}, nil
}

func (p *Producer) WriteMessage(ctx context.Context, key, value []byte) error {
	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := p.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}

	_, err := p.conn.WriteMessages(
		kafka.Message{
			Key:   key,
			Value: value,
		},
	)
	return err
}

func (p *Producer) Close() error {
	return p.conn.Close()
}
