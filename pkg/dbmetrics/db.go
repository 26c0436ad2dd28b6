// Package dbmetrics обёртка над *sql.DB со сбором prometheus-метрик запросов
// и connection pool. Также предоставляет механизм передачи транзакции через контекст.
package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-CoachingService/pkg/metrics"
)

const poolStatsInterval = 10 * time.Second

// DB обёртка над *sql.DB с метриками
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
	service string
}

// WrapWithDefault оборачивает соединение и запускает фоновый сбор метрик
// connection pool с периодом по умолчанию. Сбор останавливается при закрытии stopCh.
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	wrapped := &DB{db: db, metrics: m, service: serviceName}
	go wrapped.collectPoolStats(stopCh)
	return wrapped
}

// ExecContext выполняет запрос с записью метрик
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

// QueryContext выполняет запрос с записью метрик
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

// QueryRowContext выполняет запрос с записью метрик
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, nil)
	return row
}

// BeginTx начинает транзакцию; запросы внутри неё тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, parent: d}, nil
}

// Tx транзакция с метриками
type Tx struct {
	tx     *sql.Tx
	parent *DB
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.parent.observe(query, start, err)
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.parent.observe(query, start, err)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.parent.observe(query, start, nil)
	return row
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// observe записывает метрики выполненного запроса
func (d *DB) observe(query string, start time.Time, err error) {
	if d.metrics == nil {
		return
	}

	op := queryOperation(query)
	d.metrics.DBQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	status := "ok"
	if err != nil {
		status = "error"
	}
	d.metrics.DBQueriesTotal.WithLabelValues(op, status).Inc()
}

// collectPoolStats периодически снимает состояние connection pool
func (d *DB) collectPoolStats(stopCh <-chan struct{}) {
	ticker := time.NewTicker(poolStatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBConnectionsOpen.WithLabelValues(d.service).Set(float64(stats.OpenConnections))
			d.metrics.DBConnectionsIdle.WithLabelValues(d.service).Set(float64(stats.Idle))
			d.metrics.DBConnectionsInUse.WithLabelValues(d.service).Set(float64(stats.InUse))
		}
	}
}

// queryOperation определяет тип операции по первому слову запроса
func queryOperation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
