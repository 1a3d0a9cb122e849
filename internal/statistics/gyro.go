package statistics

import (
	"github.com/acroloop/acroloop/internal/controller"
	"github.com/acroloop/acroloop/internal/pid"
	"github.com/prometheus/client_golang/prometheus"
)

const gyroSubsystem = "gyro"

type GyroCollector struct {
	loop controller.RateLoop

	rateAvg  *prometheus.Desc
	attitude *prometheus.Desc
}

func NewGyroCollector(loop controller.RateLoop) *GyroCollector {
	return &GyroCollector{
		loop: loop,
		rateAvg: prometheus.NewDesc(prometheus.BuildFQName(namespace, gyroSubsystem, "rate_avg"),
			"Smoothed gyro rate in deg/s",
			[]string{"axis"}, nil,
		),
		attitude: prometheus.NewDesc(prometheus.BuildFQName(namespace, gyroSubsystem, "attitude"),
			"Attitude estimate in decidegrees",
			[]string{"axis"}, nil,
		),
	}
}

func (collector *GyroCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.rateAvg
	ch <- collector.attitude
}

// Collect implements required collect function for all prometheus collectors
func (collector *GyroCollector) Collect(ch chan<- prometheus.Metric) {
	telemetry := collector.loop.Snapshot()

	for _, axis := range pid.Axes {
		axisLabel := axis.String()
		ch <- prometheus.MustNewConstMetric(collector.rateAvg, prometheus.GaugeValue, telemetry.GyroRateAvg[axis], axisLabel)
		ch <- prometheus.MustNewConstMetric(collector.attitude, prometheus.GaugeValue, float64(telemetry.Attitude[axis]), axisLabel)
	}
}
