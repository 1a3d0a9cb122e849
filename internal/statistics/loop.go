package statistics

import (
	"github.com/acroloop/acroloop/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const loopSubsystem = "loop"

type LoopCollector struct {
	loop controller.RateLoop

	cycleTime    *prometheus.Desc
	cycleTimeAvg *prometheus.Desc
	cycleTimeMax *prometheus.Desc
	cycleCount   *prometheus.Desc
	armed        *prometheus.Desc
}

func NewLoopCollector(loop controller.RateLoop) *LoopCollector {
	return &LoopCollector{
		loop: loop,
		cycleTime: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "cycle_time_us"),
			"Measured duration of the last control cycle in microseconds",
			nil, nil,
		),
		cycleTimeAvg: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "cycle_time_avg_us"),
			"Average control cycle duration over the rolling window in microseconds",
			nil, nil,
		),
		cycleTimeMax: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "cycle_time_max_us"),
			"Worst control cycle duration over the rolling window in microseconds",
			nil, nil,
		),
		cycleCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "cycle_count"),
			"Number of control cycles executed since startup",
			nil, nil,
		),
		armed: prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, "armed"),
			"Whether the vehicle is currently armed",
			nil, nil,
		),
	}
}

func (collector *LoopCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.cycleTime
	ch <- collector.cycleTimeAvg
	ch <- collector.cycleTimeMax
	ch <- collector.cycleCount
	ch <- collector.armed
}

// Collect implements required collect function for all prometheus collectors
func (collector *LoopCollector) Collect(ch chan<- prometheus.Metric) {
	telemetry := collector.loop.Snapshot()

	ch <- prometheus.MustNewConstMetric(collector.cycleTime, prometheus.GaugeValue, float64(telemetry.CycleTimeUs))
	ch <- prometheus.MustNewConstMetric(collector.cycleTimeAvg, prometheus.GaugeValue, telemetry.CycleTimeAvgUs)
	ch <- prometheus.MustNewConstMetric(collector.cycleTimeMax, prometheus.GaugeValue, telemetry.CycleTimeMaxUs)
	ch <- prometheus.MustNewConstMetric(collector.cycleCount, prometheus.CounterValue, float64(telemetry.CycleCount))

	armed := 0.0
	if telemetry.Armed {
		armed = 1.0
	}
	ch <- prometheus.MustNewConstMetric(collector.armed, prometheus.GaugeValue, armed)
}
