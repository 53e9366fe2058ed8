// Package ingest bridges device-published signal samples from MQTT into the
// Postgres stores. It is a thin I/O wrapper; the scheduling core only reads
// what the collector has persisted.
package ingest

import (
	"context"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/akif5298/flowstate/core/logger"
	"github.com/akif5298/flowstate/infra/storage"
)

// Config defines the connection parameters for the ingest collector.
type Config struct {
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "flowstate-ingest-" + uuid.NewString()[:8]
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "flowstate/samples"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("ingest: broker is required")
	}
	return nil
}

// Collector subscribes to the sample topics and persists every decodable
// message. Malformed payloads are logged and dropped.
type Collector struct {
	cli    paho.Client
	writer *storage.Writer
	log    logger.Logger
	prefix string
	qos    byte
}

// NewCollector connects to the broker and returns a ready collector.
func NewCollector(cfg Config, writer *storage.Writer, log logger.Logger) (*Collector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true)
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("ingest: connect broker: %w", token.Error())
	}
	return &Collector{cli: cli, writer: writer, log: log, prefix: cfg.TopicPrefix, qos: cfg.QoS}, nil
}

// Start subscribes to the three sample topics.
func (c *Collector) Start() error {
	subs := map[string]paho.MessageHandler{
		c.prefix + "/" + KindBiometric: c.onBiometric,
		c.prefix + "/" + KindTyping:    c.onTyping,
		c.prefix + "/" + KindReaction:  c.onReaction,
	}
	for topic, handler := range subs {
		if token := c.cli.Subscribe(topic, c.qos, handler); token.Wait() && token.Error() != nil {
			return fmt.Errorf("ingest: subscribe %s: %w", topic, token.Error())
		}
		c.log.Infof("subscribed to %s", topic)
	}
	return nil
}

// Run blocks until the context is cancelled, then disconnects.
func (c *Collector) Run(ctx context.Context) error {
	if err := c.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	c.cli.Disconnect(250)
	return nil
}

func (c *Collector) onBiometric(_ paho.Client, msg paho.Message) {
	userID, sample, err := DecodeBiometric(msg.Payload())
	if err != nil {
		c.log.Warnf("biometric message dropped: %v", err)
		return
	}
	c.persist(func(ctx context.Context) error {
		return c.writer.InsertBiometric(ctx, userID, sample)
	})
}

func (c *Collector) onTyping(_ paho.Client, msg paho.Message) {
	userID, sample, err := DecodeTyping(msg.Payload())
	if err != nil {
		c.log.Warnf("typing message dropped: %v", err)
		return
	}
	c.persist(func(ctx context.Context) error {
		return c.writer.InsertTyping(ctx, userID, sample)
	})
}

func (c *Collector) onReaction(_ paho.Client, msg paho.Message) {
	userID, sample, err := DecodeReaction(msg.Payload())
	if err != nil {
		c.log.Warnf("reaction message dropped: %v", err)
		return
	}
	c.persist(func(ctx context.Context) error {
		return c.writer.InsertReaction(ctx, userID, sample)
	})
}

func (c *Collector) persist(fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		c.log.Errorf("persist sample: %v", err)
	}
}
