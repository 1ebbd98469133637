package telemetry

var OTLPEndpoint = otlpEndpoint
