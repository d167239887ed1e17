package pagser

import "time"

const (
	defaultAddr           = "[::1]:50051"
	defaultMetricsPort    = "2121"
	defaultReflection     = "false"
	defaultHealthInterval = 30 * time.Second
	shutDownTimeout       = 30 * time.Second
	healthProbeTimeout    = 5 * time.Second

	customerServiceName = "customer_service.CustomerService"
	requestIDHeader     = "x-request-id"
)
