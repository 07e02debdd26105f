package triangulate

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/seaicedyn/driftdeform/internal/triangulate"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
