package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"store-service/pkg/config"
)

var (
	initialized bool

	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	LoginAttemptsCounter prometheus.Counter
	LoginFailuresCounter prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Catalog metrics
	ProductOperationsCounter  prometheus.CounterVec
	CategoryOperationsCounter prometheus.CounterVec
	SupplierOperationsCounter prometheus.CounterVec

	// Cart and billing metrics
	CartOperationsCounter prometheus.CounterVec
	BillsCommittedCounter prometheus.Counter
	BillAmountHistogram   prometheus.Histogram

	// Inventory metrics
	ProductInventoryGauge prometheus.GaugeVec

	// Audit log metrics
	AuditWriteFailuresCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	LoginAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	LoginFailuresCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_login_failures_total",
			Help: "Total number of failed login attempts",
		},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Product metrics
	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	// Category metrics
	CategoryOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_category_operations_total",
			Help: "Total number of category operations",
		},
		[]string{"operation"},
	)

	// Supplier metrics
	SupplierOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_supplier_operations_total",
			Help: "Total number of supplier operations",
		},
		[]string{"operation"},
	)

	// Cart metrics
	CartOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_cart_operations_total",
			Help: "Total number of cart operations",
		},
		[]string{"operation"},
	)

	// Billing metrics
	BillsCommittedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_bills_committed_total",
			Help: "Total number of committed bills",
		},
	)

	BillAmountHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_bill_amount",
			Help:    "Distribution of committed bill totals",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	// Product inventory metrics
	ProductInventoryGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_product_inventory",
			Help: "Current inventory level for products",
		},
		[]string{"product_id", "product_name"},
	)

	// Audit log metrics
	AuditWriteFailuresCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_audit_write_failures_total",
			Help: "Total number of swallowed audit log write failures",
		},
		[]string{"log"},
	)

	initialized = true
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if !initialized {
			return
		}
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	if !initialized {
		return
	}
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCategoryOperation increments the counter for category operations
func RecordCategoryOperation(operation string) {
	if !initialized {
		return
	}
	CategoryOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordSupplierOperation increments the counter for supplier operations
func RecordSupplierOperation(operation string) {
	if !initialized {
		return
	}
	SupplierOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCartOperation increments the counter for cart operations
func RecordCartOperation(operation string) {
	if !initialized {
		return
	}
	CartOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordBillCommitted records a successfully committed bill and its total
func RecordBillCommitted(total float64) {
	if !initialized {
		return
	}
	BillsCommittedCounter.Inc()
	BillAmountHistogram.Observe(total)
}

// UpdateProductInventory updates the gauge for product inventory
func UpdateProductInventory(productID string, productName string, count float64) {
	if !initialized {
		return
	}
	ProductInventoryGauge.WithLabelValues(productID, productName).Set(count)
}

// RecordAuditWriteFailure counts a swallowed audit log write failure
func RecordAuditWriteFailure(log string) {
	if !initialized {
		return
	}
	AuditWriteFailuresCounter.WithLabelValues(log).Inc()
}
