package metrics

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// sqlDBProvider lo implementan los adapters sobre database/sql (sqlite, gorm).
type sqlDBProvider interface {
	SQLDB() (*sql.DB, error)
}

// pgxPoolProvider lo implementa el adapter postgres.
type pgxPoolProvider interface {
	Pool() *pgxpool.Pool
}

// RegisterStore agrega gauges del pool de conexiones de conn.
// Adapters sin pool (memory) se ignoran.
func (m *Metrics) RegisterStore(name string, conn any) error {
	if m == nil || conn == nil {
		return nil
	}
	switch c := conn.(type) {
	case pgxPoolProvider:
		return registerCollector(m.registerer, newPgxPoolCollector(name, c.Pool))
	case sqlDBProvider:
		db, err := c.SQLDB()
		if err != nil {
			return err
		}
		return registerCollector(m.registerer, collectors.NewDBStatsCollector(db, name))
	}
	return nil
}

// pgxPoolCollector expone gauges del pool pgx.
type pgxPoolCollector struct {
	pool func() *pgxpool.Pool

	acquiredDesc *prometheus.Desc
	idleDesc     *prometheus.Desc
	totalDesc    *prometheus.Desc
	maxDesc      *prometheus.Desc
}

func newPgxPoolCollector(name string, pool func() *pgxpool.Pool) *pgxPoolCollector {
	labels := prometheus.Labels{"db_name": name}
	return &pgxPoolCollector{
		pool:         pool,
		acquiredDesc: prometheus.NewDesc("pgxpool_acquired_conns", "Conexiones adquiridas", nil, labels),
		idleDesc:     prometheus.NewDesc("pgxpool_idle_conns", "Conexiones inactivas", nil, labels),
		totalDesc:    prometheus.NewDesc("pgxpool_total_conns", "Conexiones totales", nil, labels),
		maxDesc:      prometheus.NewDesc("pgxpool_max_conns", "Máximo de conexiones configurado", nil, labels),
	}
}

func (c *pgxPoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquiredDesc
	ch <- c.idleDesc
	ch <- c.totalDesc
	ch <- c.maxDesc
}

func (c *pgxPoolCollector) Collect(ch chan<- prometheus.Metric) {
	pool := c.pool()
	if pool == nil {
		return
	}
	stat := pool.Stat()
	if stat == nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(c.acquiredDesc, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idleDesc, prometheus.GaugeValue, float64(stat.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.totalDesc, prometheus.GaugeValue, float64(stat.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.maxDesc, prometheus.GaugeValue, float64(stat.MaxConns()))
}
