package statistics

import (
	"github.com/acroloop/acroloop/internal/controller"
	"github.com/acroloop/acroloop/internal/pid"
	"github.com/prometheus/client_golang/prometheus"
)

const pidSubsystem = "pid"

type PidCollector struct {
	loop controller.RateLoop

	pTerm  *prometheus.Desc
	iTerm  *prometheus.Desc
	dTerm  *prometheus.Desc
	demand *prometheus.Desc
}

func NewPidCollector(loop controller.RateLoop) *PidCollector {
	return &PidCollector{
		loop: loop,
		pTerm: prometheus.NewDesc(prometheus.BuildFQName(namespace, pidSubsystem, "p_term"),
			"Proportional term of the last control cycle",
			[]string{"axis"}, nil,
		),
		iTerm: prometheus.NewDesc(prometheus.BuildFQName(namespace, pidSubsystem, "i_term"),
			"Integral term of the last control cycle",
			[]string{"axis"}, nil,
		),
		dTerm: prometheus.NewDesc(prometheus.BuildFQName(namespace, pidSubsystem, "d_term"),
			"Derivative term of the last control cycle",
			[]string{"axis"}, nil,
		),
		demand: prometheus.NewDesc(prometheus.BuildFQName(namespace, pidSubsystem, "demand"),
			"Corrective demand of the last control cycle",
			[]string{"axis"}, nil,
		),
	}
}

func (collector *PidCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.pTerm
	ch <- collector.iTerm
	ch <- collector.dTerm
	ch <- collector.demand
}

// Collect implements required collect function for all prometheus collectors
func (collector *PidCollector) Collect(ch chan<- prometheus.Metric) {
	telemetry := collector.loop.Snapshot()

	for _, axis := range pid.Axes {
		axisLabel := axis.String()
		ch <- prometheus.MustNewConstMetric(collector.pTerm, prometheus.GaugeValue, float64(telemetry.Terms[axis].P), axisLabel)
		ch <- prometheus.MustNewConstMetric(collector.iTerm, prometheus.GaugeValue, float64(telemetry.Terms[axis].I), axisLabel)
		ch <- prometheus.MustNewConstMetric(collector.dTerm, prometheus.GaugeValue, float64(telemetry.Terms[axis].D), axisLabel)
		ch <- prometheus.MustNewConstMetric(collector.demand, prometheus.GaugeValue, float64(telemetry.Demand[axis]), axisLabel)
	}
}
