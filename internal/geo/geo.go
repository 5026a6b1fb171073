package geo

import (
	"fmt"
	"math"

	"github.com/jkimani/device_tracking_system/internal/models"
)

// Средний радиус Земли в метрах
const earthRadiusMeters = 6371000.0

// Границы зоны обслуживания (Кения)
const (
	kenyaMinLat = -4.9
	kenyaMaxLat = 5.1
	kenyaMinLon = 33.9
	kenyaMaxLon = 41.9
)

// DistanceMeters возвращает расстояние по дуге большого круга между двумя
// точками (формула гаверсинусов)
func DistanceMeters(a, b models.Coordinate) float64 {
	lat1 := degToRad(a.Latitude)
	lat2 := degToRad(b.Latitude)
	dLat := degToRad(b.Latitude - a.Latitude)
	dLon := degToRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// BearingDegrees возвращает начальный азимут от a к b, нормализованный в [0, 360)
func BearingDegrees(a, b models.Coordinate) float64 {
	lat1 := degToRad(a.Latitude)
	lat2 := degToRad(b.Latitude)
	dLon := degToRad(b.Longitude - a.Longitude)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := radToDeg(math.Atan2(y, x))
	return math.Mod(deg+360, 360)
}

// FormatDistance форматирует расстояние для отображения:
// до 1 км - целые метры, до 10 км - километры с одним знаком, дальше - целые километры
func FormatDistance(meters float64) string {
	switch {
	case meters < 1000:
		return fmt.Sprintf("%dm", int(math.Round(meters)))
	case meters < 10000:
		return fmt.Sprintf("%.1fkm", meters/1000)
	default:
		return fmt.Sprintf("%dkm", int(math.Round(meters/1000)))
	}
}

// WithinKenya проверяет, что точка попадает в границы зоны обслуживания
func WithinKenya(c models.Coordinate) bool {
	return c.Latitude >= kenyaMinLat && c.Latitude <= kenyaMaxLat &&
		c.Longitude >= kenyaMinLon && c.Longitude <= kenyaMaxLon
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
