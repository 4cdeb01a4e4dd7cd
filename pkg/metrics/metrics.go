package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса. Методы безопасны для nil-получателя,
// поэтому при выключенных метриках можно передавать nil.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	OffersServed        prometheus.Histogram
	AdmissionRejections *prometheus.CounterVec
	SkippedRecords      prometheus.Counter
	StoreErrors         *prometheus.CounterVec
	TrainingsCreated    prometheus.Counter
	InvitesSent         *prometheus.CounterVec
	RateLimited         *prometheus.CounterVec
}

// New регистрирует метрики в reg. Имя сервиса используется как namespace
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	ns := namespace(serviceName)
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "http_requests_total",
				Help:      "Общее количество HTTP запросов",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "http_request_duration_seconds",
				Help:      "Время обработки HTTP запросов в секундах",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "db_query_duration_seconds",
				Help:      "Время выполнения запросов к БД в секундах",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"operation"},
		),
		DBQueryErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "db_query_errors_total",
				Help:      "Количество ошибок запросов к БД",
			},
			[]string{"operation"},
		),
		DBConnections: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "db_connections",
				Help:      "Состояние пула соединений с БД",
			},
			[]string{"state"}, // open, in_use, idle
		),
		OffersServed: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "availability_offers",
				Help:      "Количество доступных дат в ответе",
				Buckets:   prometheus.LinearBuckets(0, 5, 6),
			},
		),
		AdmissionRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "admission_rejections_total",
				Help:      "Отказы в записи на дату по причине",
			},
			[]string{"reason"},
		),
		SkippedRecords: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "booking_records_skipped_total",
				Help:      "Записи с нераспознанной датой, пропущенные при расчете занятости",
			},
		),
		StoreErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "store_errors_total",
				Help:      "Ошибки чтения хранилищ при расчете доступности",
			},
			[]string{"store", "policy"},
		),
		TrainingsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "trainings_created_total",
				Help:      "Количество созданных записей на тренинг",
			},
		),
		InvitesSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "invites_total",
				Help:      "Отправленные приглашения по статусу",
			},
			[]string{"status"},
		),
		RateLimited: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "rate_limited_total",
				Help:      "Запросы, отклоненные ограничителем частоты",
			},
			[]string{"scope"},
		),
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveDBQuery фиксирует запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBConnections.WithLabelValues("open").Set(float64(open))
	m.DBConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.DBConnections.WithLabelValues("idle").Set(float64(idle))
}

// ObserveOffers фиксирует размер списка доступных дат
func (m *Metrics) ObserveOffers(count int) {
	if m == nil {
		return
	}
	m.OffersServed.Observe(float64(count))
}

// IncAdmissionRejected фиксирует отказ в записи
func (m *Metrics) IncAdmissionRejected(reason string) {
	if m == nil {
		return
	}
	m.AdmissionRejections.WithLabelValues(reason).Inc()
}

// IncSkippedRecord фиксирует пропущенную запись с нераспознанной датой
func (m *Metrics) IncSkippedRecord() {
	if m == nil {
		return
	}
	m.SkippedRecords.Inc()
}

// IncStoreError фиксирует ошибку чтения хранилища
func (m *Metrics) IncStoreError(store, policy string) {
	if m == nil {
		return
	}
	m.StoreErrors.WithLabelValues(store, policy).Inc()
}

// IncTrainingCreated фиксирует созданную запись
func (m *Metrics) IncTrainingCreated() {
	if m == nil {
		return
	}
	m.TrainingsCreated.Inc()
}

// AddInvites фиксирует результат рассылки приглашений
func (m *Metrics) AddInvites(sent, failed int) {
	if m == nil {
		return
	}
	m.InvitesSent.WithLabelValues("sent").Add(float64(sent))
	m.InvitesSent.WithLabelValues("failed").Add(float64(failed))
}

// IncRateLimited фиксирует отклоненный ограничителем запрос
func (m *Metrics) IncRateLimited(scope string) {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(scope).Inc()
}

func namespace(serviceName string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(strings.ToLower(serviceName))
}
