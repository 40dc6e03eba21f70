package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/uniedit/orderflow/internal/domain/order"
	"github.com/uniedit/orderflow/internal/port/outbound"
	"github.com/uniedit/orderflow/internal/utils/metrics"
	"go.uber.org/zap"
)

const transportName = "kafka"

// messageWriter is the part of kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Config holds the handoff publisher configuration.
type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// HandoffMessage is what front ends consume to open the hosted checkout.
type HandoffMessage struct {
	SessionID string    `json:"session_id"`
	URL       string    `json:"url,omitempty"`
	PublicKey string    `json:"public_key"`
	IssuedAt  time.Time `json:"issued_at"`
}

// HandoffPublisher publishes checkout launches to a topic that web front
// ends listen on. Publishing happens in the background; Launch never waits
// for the broker.
type HandoffPublisher struct {
	writer  messageWriter
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewHandoffPublisher creates a publisher backed by a kafka-go writer.
func NewHandoffPublisher(cfg Config, m *metrics.Metrics, logger *zap.Logger) *HandoffPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return newHandoffPublisher(w, cfg.WriteTimeout, m, logger)
}

func newHandoffPublisher(w messageWriter, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *HandoffPublisher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HandoffPublisher{
		writer:  w,
		timeout: timeout,
		metrics: m,
		logger:  logger,
	}
}

// Launch implements outbound.CheckoutHandoffPort.
func (p *HandoffPublisher) Launch(ctx context.Context, publicKey string, session order.PaymentSession) {
	value, err := json.Marshal(HandoffMessage{
		SessionID: session.ID,
		URL:       session.URL,
		PublicKey: publicKey,
		IssuedAt:  time.Now().UTC(),
	})
	if err != nil {
		p.logger.Error("marshal handoff message", zap.Error(err))
		p.metrics.RecordHandoff(transportName, false)
		return
	}

	msg := kafka.Message{
		Key:   []byte(session.ID),
		Value: value,
	}

	// The action that launched the checkout may finish before the write does.
	writeCtx := context.WithoutCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ctx, cancel := context.WithTimeout(writeCtx, p.timeout)
		defer cancel()

		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.logger.Warn("publish checkout handoff",
				zap.String("session_id", session.ID),
				zap.Error(err),
			)
			p.metrics.RecordHandoff(transportName, false)
			return
		}
		p.logger.Debug("checkout handoff published", zap.String("session_id", session.ID))
		p.metrics.RecordHandoff(transportName, true)
	}()
}

// Close waits for in-flight publishes and closes the writer.
func (p *HandoffPublisher) Close() error {
	p.wg.Wait()
	return p.writer.Close()
}

var _ outbound.CheckoutHandoffPort = (*HandoffPublisher)(nil)
