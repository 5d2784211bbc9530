package mqtt

// Topic prefixes for the standing data service.
//
// All topics live under the standingdata/ namespace so a shared broker can
// carry traffic for other services without collisions.
const (
	// TopicPrefixSystem is the base for service lifecycle topics.
	TopicPrefixSystem = "standingdata/system"

	// TopicPrefixDataset is the base for dataset lifecycle topics.
	TopicPrefixDataset = "standingdata/dataset"
)

// Topics provides builders for standing data MQTT topics.
// Using these helpers keeps topic naming consistent across the codebase.
type Topics struct{}

// SystemStatus returns the topic carrying the service online/offline status.
// Messages on this topic are retained so new subscribers see the last state.
//
// Topic: standingdata/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// DatasetRefresh returns the topic the service listens on for reload
// notifications. Publishing any payload to this topic causes the service to
// discard its shard cache and re-read the dataset tree from disk.
//
// Topic: standingdata/dataset/refresh
func (Topics) DatasetRefresh() string {
	return TopicPrefixDataset + "/refresh"
}

// DatasetStatus returns the topic the service publishes to after completing
// a dataset reload.
//
// Topic: standingdata/dataset/status
func (Topics) DatasetStatus() string {
	return TopicPrefixDataset + "/status"
}
