package cart

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Commands *prometheus.CounterVec
	Sessions prometheus.GaugeFunc
	Swept    prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer, store SessionStore) *Metrics {
	m := &Metrics{
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_commands_total",
				Help: "Cart commands by name and result",
			},
			[]string{"command", "result"},
		),
		Sessions: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "cart_sessions_active",
				Help: "Carts currently held in memory",
			},
			func() float64 { return float64(store.Len()) },
		),
		Swept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cart_sessions_swept_total",
			Help: "Idle carts discarded by the sweeper",
		}),
	}

	reg.MustRegister(m.Commands, m.Sessions, m.Swept)
	return m
}

func (m *Metrics) observe(cmd Command, err error) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(cmd.Name(), resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, ErrLineItemNotFound):
		return "line_item_not_found"
	case errors.Is(err, ErrInvalidProductID):
		return "invalid"
	case errors.Is(err, ErrTotalOverflow):
		return "overflow"
	default:
		return "error"
	}
}
