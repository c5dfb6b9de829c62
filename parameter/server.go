package parameter

import "time"

// HTTP Server
const (
	// ServeAddr is the listen address when neither -addr nor EVOLVE_ADDR is set
	ServeAddr = ":8080"

	// ServeAddrEnv names the environment variable (or .env key) holding the listen address
	ServeAddrEnv = "EVOLVE_ADDR"

	// ServeRunTimeout bounds the optimizer work of one request
	ServeRunTimeout = 30 * time.Second

	// ServeReadHeaderTimeout bounds slow clients
	ServeReadHeaderTimeout = 5 * time.Second

	// ServeShutdownTimeout is the grace period for in-flight requests
	ServeShutdownTimeout = 10 * time.Second
)

// HTTP Server - request limits
const (
	ServeMaxCount = 10_000
	ServeMaxSteps = 1_000_000
	ServeMaxRuns  = 64
)
