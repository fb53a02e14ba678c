package notification

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"remo-dashboard/config"
)

const publishTimeout = 5 * time.Second

// Publisher delivers an event to its subscribers.
type Publisher interface {
	Publish(ev Event) error
}

// MQTTPublisher publishes events as JSON to <prefix>/<kind>/<appliance_id>.
type MQTTPublisher struct {
	client mqtt.Client
	prefix string
}

// NewMQTTPublisher creates a publisher for the configured broker. Call Connect
// before publishing.
func NewMQTTPublisher(cfg config.MQTTConfig) *MQTTPublisher {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Broker, cfg.Port))
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(10 * time.Second)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Printf("MQTT connection lost: %v", err)
	})
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		log.Printf("MQTT connected to %s:%d", cfg.Broker, cfg.Port)
	})

	return &MQTTPublisher{
		client: mqtt.NewClient(opts),
		prefix: cfg.TopicPrefix,
	}
}

// Connect establishes the broker connection.
func (p *MQTTPublisher) Connect() error {
	token := p.client.Connect()
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("timed out connecting to MQTT broker")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	return nil
}

// Disconnect closes the broker connection.
func (p *MQTTPublisher) Disconnect() {
	p.client.Disconnect(250)
}

// Publish sends one event with QoS 1, not retained.
func (p *MQTTPublisher) Publish(ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	token := p.client.Publish(Topic(p.prefix, ev), 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("timed out publishing to %s", Topic(p.prefix, ev))
	}
	return token.Error()
}

// Topic returns the topic an event is published on.
func Topic(prefix string, ev Event) string {
	return fmt.Sprintf("%s/%s/%s", prefix, ev.Kind, ev.ApplianceID)
}
