package ingestor

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	config "github.com/Ajithkumar-developer/Inventory/src/production/INV.Config"
	"github.com/Ajithkumar-developer/Inventory/src/production/INV.IngestorService/client"
	logger "github.com/Ajithkumar-developer/Inventory/src/production/INV.Logger"
)

// reading is one weight report received from a scale
type reading struct {
	DeviceID uint
	Weight   float64
	Topic    string
}

// weightPayload is the JSON body published by the scales
type weightPayload struct {
	Weight float64 `json:"weight"`
}

// Ingestor subscribes to scale weight topics and forwards each reading
// to the Inventory API Service.
type Ingestor struct {
	cfg        *config.IngestorConfig
	apiClient  *client.APIClient
	mqttClient mqtt.Client
	msgCh      chan reading
	wg         sync.WaitGroup
	logger     *logger.Logger
}

// New creates an ingestor
func New(cfg *config.IngestorConfig, apiClient *client.APIClient, log *logger.Logger) *Ingestor {
	return &Ingestor{
		cfg:       cfg,
		apiClient: apiClient,
		msgCh:     make(chan reading, 4096),
		logger:    log.WithComponent("scale-ingestor"),
	}
}

// Start connects to the broker, subscribes, and launches the forwarder
func (i *Ingestor) Start(ctx context.Context) error {
	opts := mqtt.NewClientOptions().
		AddBroker(i.cfg.GetMQTTBrokerURL()).
		SetClientID(i.cfg.MQTT.ClientID).
		SetOrderMatters(false).
		SetKeepAlive(i.cfg.MQTT.KeepAlive).
		SetPingTimeout(i.cfg.MQTT.PingTimeout).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetCleanSession(false)

	if i.cfg.MQTT.BrokerUser != "" {
		opts.SetUsername(i.cfg.MQTT.BrokerUser)
		opts.SetPassword(i.cfg.MQTT.BrokerPass)
	}

	if i.cfg.MQTT.UseTLS {
		tlsCfg, err := i.tlsConfig(i.cfg.MQTT.CACertPath)
		if err != nil {
			return err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		i.logger.Logger.Error().Err(err).Msg("MQTT connection lost")
	}
	opts.OnConnect = func(c mqtt.Client) {
		topic := i.cfg.MQTT.Topic
		if i.cfg.MQTT.SharedGroup != "" {
			topic = fmt.Sprintf("$share/%s/%s", i.cfg.MQTT.SharedGroup, i.cfg.MQTT.Topic)
		}
		i.logger.Logger.Info().Str("topic", topic).Msg("MQTT connected, subscribing to topic")
		if token := c.Subscribe(topic, 1, i.onMessage); token.Wait() && token.Error() != nil {
			i.logger.Logger.Error().Err(token.Error()).Str("topic", topic).Msg("Failed to subscribe to MQTT topic")
		}
	}

	i.mqttClient = mqtt.NewClient(opts)
	if tk := i.mqttClient.Connect(); tk.Wait() && tk.Error() != nil {
		return tk.Error()
	}

	i.wg.Add(1)
	go func() {
		defer i.wg.Done()
		i.forward(ctx)
	}()

	return nil
}

// Stop disconnects from the broker and drains the forwarder
func (i *Ingestor) Stop() {
	if i.mqttClient != nil && i.mqttClient.IsConnected() {
		i.mqttClient.Disconnect(500)
	}
	close(i.msgCh)
	i.wg.Wait()
}

// IsConnected reports the broker connection state
func (i *Ingestor) IsConnected() bool {
	return i.mqttClient != nil && i.mqttClient.IsConnected()
}

// onMessage parses one scale report. Expected topic format:
// scales/<device_id>/weight
func (i *Ingestor) onMessage(_ mqtt.Client, m mqtt.Message) {
	i.logger.Logger.Debug().Str("topic", m.Topic()).Str("payload", string(m.Payload())).Msg("Received MQTT message")

	parts := strings.Split(m.Topic(), "/")
	if len(parts) < 3 {
		i.logger.Logger.Warn().Str("topic", m.Topic()).Str("expected", "scales/<device_id>/weight").Msg("Invalid topic format")
		return
	}

	deviceID, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		i.logger.Logger.Warn().Str("topic", m.Topic()).Str("device_id", parts[1]).Msg("Invalid device id in topic")
		return
	}

	var payload weightPayload
	if err := json.Unmarshal(m.Payload(), &payload); err != nil {
		// Bare numeric payloads are accepted too
		weight, convErr := strconv.ParseFloat(strings.TrimSpace(string(m.Payload())), 64)
		if convErr != nil {
			i.logger.Logger.Warn().Err(err).Str("topic", m.Topic()).Msg("Unparseable weight payload")
			return
		}
		payload.Weight = weight
	}

	i.msgCh <- reading{DeviceID: uint(deviceID), Weight: payload.Weight, Topic: m.Topic()}
}

// forward drains the channel and reports each reading to the API
func (i *Ingestor) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case rd, ok := <-i.msgCh:
			if !ok {
				return
			}
			if err := i.apiClient.UpdateWeight(ctx, rd.DeviceID, rd.Weight); err != nil {
				i.logger.Logger.Error().Err(err).Uint("device_id", rd.DeviceID).Float64("weight", rd.Weight).Msg("Failed to forward reading")
				continue
			}
			i.logger.Logger.Info().Uint("device_id", rd.DeviceID).Float64("weight", rd.Weight).Msg("Reading forwarded")
		}
	}
}

func (i *Ingestor) tlsConfig(caFile string) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if caFile == "" {
		return cfg, nil
	}
	ca, err := os.ReadFile(caFile)
	if err != nil {
		return nil, err
	}
	cp := x509.NewCertPool()
	if !cp.AppendCertsFromPEM(ca) {
		return nil, fmt.Errorf("bad CA file")
	}
	cfg.RootCAs = cp
	return cfg, nil
}
