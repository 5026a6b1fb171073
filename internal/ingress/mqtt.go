package ingress

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/jkimani/device_tracking_system/internal/service"
	"github.com/sirupsen/logrus"
)

const mqttConnectTimeout = 10 * time.Second

// samplePayload - формат телеметрии устройства в MQTT-сообщении
type samplePayload struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy_meters,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
}

// MQTTIngress - вход телеметрии реальных устройств: подписывается на топики
// вида devices/<entityID>/location и подает выборки в общий шлюз ядра.
// Полностью взаимозаменяем с симулированным источником.
type MQTTIngress struct {
	client   mqtt.Client
	tracking service.TrackingService
	topic    string
	logger   *logrus.Logger
}

// NewMQTTIngress создает вход телеметрии; подключение происходит в Start
func NewMQTTIngress(broker, clientID, topic string, tracking service.TrackingService, logger *logrus.Logger) *MQTTIngress {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttConnectTimeout)

	return &MQTTIngress{
		client:   mqtt.NewClient(opts),
		tracking: tracking,
		topic:    topic,
		logger:   logger,
	}
}

// Start подключается к брокеру и подписывается на топик телеметрии
func (i *MQTTIngress) Start(ctx context.Context) error {
	if token := i.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	if token := i.client.Subscribe(i.topic, 1, func(_ mqtt.Client, msg mqtt.Message) {
		i.handleMessage(ctx, msg)
	}); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", i.topic, token.Error())
	}

	i.logger.WithField("topic", i.topic).Info("MQTT telemetry ingress started")
	return nil
}

// Stop отписывается и разрывает соединение с брокером
func (i *MQTTIngress) Stop() {
	if i.client.IsConnected() {
		i.client.Unsubscribe(i.topic)
		i.client.Disconnect(250)
	}
	i.logger.Info("MQTT telemetry ingress stopped")
}

func (i *MQTTIngress) handleMessage(ctx context.Context, msg mqtt.Message) {
	entityID := entityIDFromTopic(msg.Topic())
	log := i.logger.WithFields(logrus.Fields{
		"topic":     msg.Topic(),
		"entity_id": entityID,
	})
	if entityID == "" {
		log.Warn("Ignoring MQTT message with malformed topic")
		return
	}

	var payload samplePayload
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		log.WithError(err).Warn("Failed to unmarshal telemetry payload")
		return
	}

	source := models.LocationSource(payload.Source)
	if !source.Valid() {
		source = models.SourceGPS
	}
	if payload.Timestamp.IsZero() {
		payload.Timestamp = time.Now().UTC()
	}

	sample := models.Location{
		Coordinate: models.Coordinate{
			Latitude:  payload.Latitude,
			Longitude: payload.Longitude,
		},
		AccuracyMeters: payload.Accuracy,
		Timestamp:      payload.Timestamp,
		Source:         source,
	}

	if _, _, err := i.tracking.SubmitSample(ctx, entityID, sample); err != nil {
		log.WithError(err).Warn("Telemetry sample submission failed")
	}
}

// entityIDFromTopic извлекает идентификатор сущности из топика
// devices/<entityID>/location
func entityIDFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != "devices" || parts[2] != "location" {
		return ""
	}
	return parts[1]
}
