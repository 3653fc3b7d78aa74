package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ariefcatur/agri-admin/internal/listview"
)

const namespace = "agri_admin"

// Collectors holds the store metrics registered on one registry.
type Collectors struct {
	Mutations *prometheus.CounterVec
	Records   *prometheus.GaugeVec
}

func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Store mutations by entity and operation.",
		}, []string{"entity", "op"}),
		Records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_records",
			Help:      "Records currently held per entity.",
		}, []string{"entity"}),
	}
	reg.MustRegister(c.Mutations, c.Records)
	return c
}

// Watch feeds the collectors from s.
func Watch[T any](c *Collectors, s *listview.Store[T]) {
	entity := s.Schema().Name
	records := c.Records.WithLabelValues(entity)
	records.Set(float64(s.Len()))
	s.Subscribe(func(ch listview.Change[T]) {
		c.Mutations.WithLabelValues(entity, string(ch.Op)).Inc()
		switch ch.Op {
		case listview.OpAdd:
			records.Inc()
		case listview.OpRemove:
			records.Dec()
		}
	})
}
