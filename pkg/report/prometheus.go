package report

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry returns a registry holding one gauge sample per result.
func Registry(results []Result) (*prometheus.Registry, error) {
	labels := []string{"entry", "requested_n", "effective_n", "degraded"}
	nsPerUpdate := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "assocbench",
		Name:      "ns_per_update",
		Help:      "Nanoseconds per point-update.",
	}, labels)
	allocs := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "assocbench",
		Name:      "allocs_per_op",
		Help:      "Allocations per trial.",
	}, labels)
	overhead := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "assocbench",
		Name:      "overhead_ratio",
		Help:      "ns/update relative to the mutable slice at the same size.",
	}, labels)

	reg := prometheus.NewRegistry()
	for _, c := range []prometheus.Collector{nsPerUpdate, allocs, overhead} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	for _, r := range results {
		lv := []string{
			r.Entry,
			strconv.FormatInt(r.RequestedN, 10),
			strconv.FormatInt(r.EffectiveN, 10),
			strconv.FormatBool(r.Degraded),
		}
		nsPerUpdate.WithLabelValues(lv...).Set(r.NsPerUpdate)
		allocs.WithLabelValues(lv...).Set(float64(r.AllocsPerOp))
		if r.Overhead > 0 {
			overhead.WithLabelValues(lv...).Set(r.Overhead)
		}
	}
	return reg, nil
}

// WritePrometheus writes results in the Prometheus text format to path,
// suitable for a node_exporter textfile collector.
func WritePrometheus(path string, results []Result) error {
	reg, err := Registry(results)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
