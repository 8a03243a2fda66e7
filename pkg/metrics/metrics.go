package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP
// =============================================================================

// HttpRequestsTotal - счётчик HTTP запросов
// Пример: rate(http_requests_total{service="booking-service"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - время ответа, бакеты от 1ms до 10s
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Хранилища (MongoDB, PostgreSQL)
// =============================================================================

// DbQueryDuration - table это имя таблицы или коллекции
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// DbTransactions - результат транзакций: committed, aborted
var DbTransactions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_transactions_total",
		Help: "Total number of database transactions by outcome",
	},
	[]string{"service", "outcome"},
)

// =============================================================================
// Redis
// =============================================================================

var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"},
)

var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// LockWaitDuration - сколько запрос ждал пользовательскую блокировку
var LockWaitDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "lock_wait_duration_seconds",
		Help:    "Time spent waiting for a distributed lock",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 3},
	},
	[]string{"service", "scope"},
)

// LockTimeouts - не дождались блокировки
var LockTimeouts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "lock_timeouts_total",
		Help: "Total number of lock acquisitions that timed out",
	},
	[]string{"service", "scope"},
)

// =============================================================================
// Kafka
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaMessagesConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_consumed_total",
		Help: "Total number of Kafka messages consumed",
	},
	[]string{"service", "topic", "group"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

var KafkaConsumeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_consume_duration_seconds",
		Help:    "Duration of Kafka message processing",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - operation: produce, consume, commit
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Бронирования и лояльность
// =============================================================================

var ReservationsCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "reservations_created_total",
		Help: "Total number of reservations created",
	},
)

var ReservationsCancelled = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "reservations_cancelled_total",
		Help: "Total number of reservations cancelled",
	},
)

var ReservationsModified = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "reservations_modified_total",
		Help: "Total number of reservation date changes",
	},
)

// ReservationRejections - отказы по типу ошибки (conflict, insufficient_points, ...)
var ReservationRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reservation_rejections_total",
		Help: "Total number of rejected reservation operations by reason",
	},
	[]string{"operation", "reason"},
)

// ReservationsAmount - сумма созданных бронирований
var ReservationsAmount = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "reservations_total_amount",
		Help: "Total monetary amount of created reservations",
	},
)

// LoyaltyPointsDelta - распределение изменений баланса баллов
var LoyaltyPointsDelta = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "loyalty_points_delta",
		Help:    "Distribution of loyalty point changes",
		Buckets: []float64{-1000, -100, -10, 0, 10, 100, 500, 1000, 5000},
	},
	[]string{"direction"}, // apply, reverse
)

// LoyaltyCASRetries - повторы из-за конкурентного изменения баланса
var LoyaltyCASRetries = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "loyalty_cas_retries_total",
		Help: "Total number of balance compare-and-swap retries",
	},
)

// =============================================================================
// Отзывы
// =============================================================================

var ReviewsCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "reviews_created_total",
		Help: "Total number of reviews created",
	},
)

var ReviewsRating = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "reviews_rating",
		Help:    "Distribution of review ratings",
		Buckets: []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5},
	},
)

// =============================================================================
// Rating worker
// =============================================================================

// WorkerRatingUpdates - пересчеты рейтинга отеля, source: event, cron
var WorkerRatingUpdates = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "worker_rating_updates_total",
		Help: "Total number of hotel rating recalculations",
	},
	[]string{"source", "status"},
)

var WorkerProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "worker_event_processing_duration_seconds",
		Help:    "Duration of review event processing in worker",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	},
)
