package directory

import (
	"encoding/json"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/voltwise/stationmatch/core/model"
	"github.com/voltwise/stationmatch/infra/logger"
	"github.com/voltwise/stationmatch/internal/eventbus"
)

// Config defines the connection parameters for the facility status feed.
type Config struct {
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	// StatusTopic is the wildcard topic operators publish facility snapshots
	// on, one retained message per facility.
	StatusTopic string `json:"status_topic"`
	QoS         byte   `json:"qos"`
}

// SetDefaults applies topic and client id defaults.
func (c *Config) SetDefaults() {
	if c.StatusTopic == "" {
		c.StatusTopic = "stations/status/#"
	}
	if c.ClientID == "" {
		c.ClientID = "stationmatch-" + uuid.NewString()[:8]
	}
}

// UpdateEvent is published on the bus after every store change.
type UpdateEvent struct {
	FacilityID string
	Removed    bool
	Count      int
}

// Feed subscribes to the status topic and mirrors facility snapshots into the
// store. Retained messages hydrate the store on connect, so a restart
// converges without operator action.
type Feed struct {
	cli   paho.Client
	cfg   Config
	store Store
	bus   eventbus.EventBus
	log   logger.Logger
}

// NewFeed connects to the broker and starts mirroring facility state.
func NewFeed(cfg Config, store Store, bus eventbus.EventBus) (*Feed, error) {
	cfg.SetDefaults()
	f := &Feed{cfg: cfg, store: store, bus: bus, log: logger.New("directory_feed")}

	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(c paho.Client) {
		f.log.Infof("directory feed connected")
		if token := c.Subscribe(cfg.StatusTopic, cfg.QoS, f.onStatus); token.Wait() && token.Error() != nil {
			f.log.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		f.log.Errorf("connection lost: %v", err)
	}

	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("directory feed connect: %w", token.Error())
	}
	f.cli = cli
	return f, nil
}

// onStatus applies one facility snapshot. An empty payload is a decommission
// marker (the MQTT convention for clearing a retained message).
func (f *Feed) onStatus(_ paho.Client, m paho.Message) {
	if len(m.Payload()) == 0 {
		id := idFromTopic(m.Topic())
		if id == "" {
			return
		}
		f.store.Remove(id)
		f.publish(UpdateEvent{FacilityID: id, Removed: true, Count: f.store.Len()})
		return
	}
	var fac model.Facility
	if err := json.Unmarshal(m.Payload(), &fac); err != nil {
		f.log.Errorf("invalid facility payload on %s: %v", m.Topic(), err)
		return
	}
	if fac.ID == "" {
		fac.ID = idFromTopic(m.Topic())
	}
	if err := fac.Validate(); err != nil {
		f.log.Warnf("rejected facility snapshot %s: %v", fac.ID, err)
		return
	}
	f.store.Upsert(fac)
	f.publish(UpdateEvent{FacilityID: fac.ID, Count: f.store.Len()})
}

func (f *Feed) publish(ev UpdateEvent) {
	if f.bus != nil {
		f.bus.Publish(ev)
	}
}

// Close disconnects from the broker.
func (f *Feed) Close() error {
	if f.cli != nil && f.cli.IsConnected() {
		f.cli.Disconnect(250)
	}
	return nil
}

// idFromTopic extracts the facility id from "stations/status/<id>".
func idFromTopic(topic string) string {
	for i := len(topic) - 1; i >= 0; i-- {
		if topic[i] == '/' {
			return topic[i+1:]
		}
	}
	return ""
}
