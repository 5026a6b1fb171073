package mobile

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/jkimani/device_tracking_system/internal/models"
)

var (
	// ErrUnknownCarrier - префикс номера не сопоставлен ни одному оператору
	ErrUnknownCarrier = errors.New("unknown network provider")

	// ErrCarrierUnavailable - оператор не сконфигурирован либо симулированный сбой
	ErrCarrierUnavailable = errors.New("carrier unavailable")
)

// Таблицы национальных префиксов кенийских операторов (первые три цифры
// после кода страны)
var carrierPrefixes = map[string]models.Carrier{}

func init() {
	register := func(carrier models.Carrier, prefixes ...string) {
		for _, p := range prefixes {
			carrierPrefixes[p] = carrier
		}
	}

	register(models.CarrierSafaricom,
		"700", "701", "702", "703", "704", "705", "706", "707", "708", "709",
		"710", "711", "712", "713", "714", "715", "716", "717", "718", "719",
		"720", "721", "722", "723", "724", "725", "726", "727", "728", "729",
		"740", "741", "742", "743", "745", "746", "748",
		"757", "758", "759", "768", "769",
		"790", "791", "792", "793", "794", "795", "796", "797", "798", "799",
		"110", "111", "112", "113", "114", "115",
	)
	register(models.CarrierAirtel,
		"730", "731", "732", "733", "734", "735", "736", "737", "738", "739",
		"750", "751", "752", "753", "754", "755", "756",
		"780", "781", "782", "783", "784", "785", "786", "787", "788", "789",
		"100", "101", "102", "103", "104", "105", "106",
	)
	register(models.CarrierTelkom,
		"770", "771", "772", "773", "774", "775", "776", "777", "778", "779",
	)
}

// ResolveCarrier детерминированно определяет оператора по префиксу номера.
// Нераспознанный префикс дает CarrierUnknown.
func ResolveCarrier(mobileNumber string) models.Carrier {
	national := normalizeMSISDN(mobileNumber)
	if len(national) < 3 {
		return models.CarrierUnknown
	}
	if carrier, ok := carrierPrefixes[national[:3]]; ok {
		return carrier
	}
	return models.CarrierUnknown
}

// normalizeMSISDN приводит номер к национальной форме без кода страны
// и ведущего нуля: "+254701000000" и "0701000000" дают "701000000"
func normalizeMSISDN(number string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n := digits.String()
	switch {
	case strings.HasPrefix(n, "254"):
		return n[3:]
	case strings.HasPrefix(n, "0"):
		return n[1:]
	}
	return n
}

// CarrierAdapter - шлюз к инфраструктуре определения местоположения оператора
type CarrierAdapter interface {
	Carrier() models.Carrier
	Locate(ctx context.Context, mobileNumber string) (*models.Location, error)
}

// SimulatedAdapter имитирует запрос к сети оператора: сетевая задержка,
// позиция около одной из базовых станций, оценка точности. Несконфигурированный
// адаптер всегда отказывает.
type SimulatedAdapter struct {
	carrier       models.Carrier
	latency       time.Duration
	baseAccuracyM float64
	cellSites     []models.Coordinate
	configured    bool

	mu  sync.Mutex
	rnd *rand.Rand
}

// SimulatedAdapterConfig - параметры симулированного адаптера оператора
type SimulatedAdapterConfig struct {
	Carrier       models.Carrier
	Latency       time.Duration
	BaseAccuracyM float64
	CellSites     []models.Coordinate
}

// NewSimulatedAdapter создает адаптер; адаптер без базовых станций
// считается несконфигурированным
func NewSimulatedAdapter(cfg SimulatedAdapterConfig) *SimulatedAdapter {
	if cfg.BaseAccuracyM <= 0 {
		cfg.BaseAccuracyM = 150
	}
	return &SimulatedAdapter{
		carrier:       cfg.Carrier,
		latency:       cfg.Latency,
		baseAccuracyM: cfg.BaseAccuracyM,
		cellSites:     cfg.CellSites,
		configured:    len(cfg.CellSites) > 0,
		rnd:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Carrier возвращает оператора, которого обслуживает адаптер
func (a *SimulatedAdapter) Carrier() models.Carrier {
	return a.carrier
}

// Locate имитирует запрос местоположения у оператора
func (a *SimulatedAdapter) Locate(ctx context.Context, mobileNumber string) (*models.Location, error) {
	if a.latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.latency):
		}
	}

	if !a.configured {
		return nil, fmt.Errorf("%w: %s adapter is not configured", ErrCarrierUnavailable, a.carrier)
	}

	a.mu.Lock()
	site := a.cellSites[a.rnd.Intn(len(a.cellSites))]
	jitterLat := (a.rnd.Float64()*2 - 1) * 0.002
	jitterLon := (a.rnd.Float64()*2 - 1) * 0.002
	accuracy := a.baseAccuracyM * (0.5 + a.rnd.Float64())
	a.mu.Unlock()

	return &models.Location{
		Coordinate: models.Coordinate{
			Latitude:  site.Latitude + jitterLat,
			Longitude: site.Longitude + jitterLon,
		},
		AccuracyMeters: accuracy,
		Timestamp:      time.Now().UTC(),
		Source:         models.SourceNetwork,
	}, nil
}

// AdapterRegistry - реестр адаптеров по операторам
type AdapterRegistry map[models.Carrier]CarrierAdapter

// NewAdapterRegistry собирает реестр из набора адаптеров
func NewAdapterRegistry(adapters ...CarrierAdapter) AdapterRegistry {
	registry := make(AdapterRegistry, len(adapters))
	for _, adapter := range adapters {
		registry[adapter.Carrier()] = adapter
	}
	return registry
}
