package transmission

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/portacharging/charger-audit/internal/audit"
	"github.com/portacharging/charger-audit/internal/mqtt"
	"github.com/portacharging/charger-audit/internal/report"
)

// MQTTTransmitter publishes per-charger audit results and the run summary
// via MQTT so downstream dashboards can consume them.
type MQTTTransmitter struct {
	client *mqtt.Client
	logger *logrus.Logger
}

// NewMQTTTransmitter creates a new MQTT transmitter.
func NewMQTTTransmitter(client *mqtt.Client, logger *logrus.Logger) *MQTTTransmitter {
	return &MQTTTransmitter{
		client: client,
		logger: logger,
	}
}

// Transmit publishes one charger's result as JSON. Results are retained
// so late subscribers see the latest audit per charger.
func (t *MQTTTransmitter) Transmit(result *audit.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal audit result: %w", err)
	}

	topic := t.client.GetResultTopic(result.ChargerID)
	if err := t.client.Publish(topic, payload, true); err != nil {
		return fmt.Errorf("MQTT transmit failed: %w", err)
	}

	t.logger.WithFields(logrus.Fields{
		"charger_id": result.ChargerID,
		"errors":     result.TotalErrors,
	}).Debug("Published audit result")

	return nil
}

// TransmitSummary publishes the aggregated run summary.
func (t *MQTTTransmitter) TransmitSummary(summary *report.Summary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}
	if err := t.client.Publish(t.client.GetSummaryTopic(), payload, true); err != nil {
		return fmt.Errorf("MQTT transmit failed: %w", err)
	}
	return nil
}

// IsConnected reports broker connectivity.
func (t *MQTTTransmitter) IsConnected() bool {
	return t.client.IsConnected()
}
