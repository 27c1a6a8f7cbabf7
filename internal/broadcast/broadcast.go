package broadcast

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

// PositionEvent is published whenever a reader lands on a new page or
// switches edition, so paired devices can follow along.
type PositionEvent struct {
	UserID   int       `json:"user_id"`
	Page     int       `json:"page"`
	Edition  string    `json:"edition"`
	ViewMode string    `json:"view_mode"`
	Surah    int       `json:"surah,omitempty"`
	Juz      int       `json:"juz"`
	At       time.Time `json:"at"`
}

type Publisher interface {
	PublishPosition(ev PositionEvent) error
	Close()
}

// Topic is where a reader's position events go.
func Topic(userID int) string {
	return fmt.Sprintf("rafiq/readers/%d/position", userID)
}

// Nop drops every event; used when no broker is configured.
type Nop struct{}

func (Nop) PublishPosition(PositionEvent) error { return nil }
func (Nop) Close()                              {}

type MQTTPublisher struct {
	client  mqtt.Client
	timeout time.Duration
}

// MQTT connection handler
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("[broadcast] connected to MQTT broker")
}

// MQTT connection lost handler
var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("[broadcast] MQTT connection lost")
}

// NewMQTTPublisher connects to brokerURL. The client reconnects on its own
// after the first successful connect.
func NewMQTTPublisher(brokerURL, clientID string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(5 * time.Second)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &MQTTPublisher{client: client, timeout: 2 * time.Second}, nil
}

// PublishPosition sends a retained message so a device that subscribes late
// still receives the latest position.
func (p *MQTTPublisher) PublishPosition(ev PositionEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	topic := Topic(ev.UserID)
	token := p.client.Publish(topic, 1, true, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	log.Debug().Str("topic", topic).Int("page", ev.Page).Msg("[broadcast] position published")
	return nil
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
	log.Info().Msg("[broadcast] MQTT client disconnected")
}
