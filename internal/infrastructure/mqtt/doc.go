// Package mqtt provides MQTT client connectivity for the standing data service.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The service uses MQTT for dataset lifecycle coordination. A data pipeline
// that rewrites the CSV tree publishes to standingdata/dataset/refresh, and
// the service reacts by discarding its shard cache so subsequent queries see
// the new data. The service also announces its own online/offline status for
// monitoring.
//
//	CSV pipeline → MQTT Broker → standing data service (cache reload)
//
// MQTT is entirely optional: when mqtt.enabled is false the service runs
// standalone and the cache only refreshes on restart.
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// React to dataset refresh notifications
//	err = client.Subscribe(mqtt.Topics{}.DatasetRefresh(), 1,
//	    func(topic string, payload []byte) error {
//	        return store.Reload()
//	    })
package mqtt
