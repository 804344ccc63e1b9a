package metrics

// Config defines settings for metrics sinks.
type Config struct {
	// PrometheusEnabled exposes allocation metrics on the API server.
	PrometheusEnabled bool `json:"prometheus_enabled"`
	// InfluxEnabled writes allocation points to an InfluxDB instance.
	InfluxEnabled bool   `json:"influx_enabled"`
	InfluxURL     string `json:"influx_url"`
	InfluxToken   string `json:"influx_token"`
	InfluxOrg     string `json:"influx_org"`
	InfluxBucket  string `json:"influx_bucket"`
}
