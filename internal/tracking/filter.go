package tracking

import (
	"github.com/jkimani/device_tracking_system/internal/geo"
	"github.com/jkimani/device_tracking_system/internal/models"
)

// Порог значимого перемещения по умолчанию, метры
const DefaultSignificanceThresholdMeters = 10.0

// PositionFilter - единственный шлюз против шумных GPS-выборок.
// Вызывающие обязаны пропустить выборку через IsSignificant до записи в историю.
type PositionFilter struct {
	thresholdMeters float64
}

// NewPositionFilter создает фильтр с заданным порогом; при неположительном
// значении используется порог по умолчанию
func NewPositionFilter(thresholdMeters float64) *PositionFilter {
	if thresholdMeters <= 0 {
		thresholdMeters = DefaultSignificanceThresholdMeters
	}
	return &PositionFilter{thresholdMeters: thresholdMeters}
}

// ThresholdMeters возвращает действующий порог фильтра
func (f *PositionFilter) ThresholdMeters() float64 {
	return f.thresholdMeters
}

// IsSignificant возвращает true, если предыдущей принятой позиции нет либо
// кандидат отстоит от нее не меньше порога
func (f *PositionFilter) IsSignificant(previous *models.Location, candidate models.Location) bool {
	if previous == nil {
		return true
	}
	return geo.DistanceMeters(previous.Coordinate, candidate.Coordinate) >= f.thresholdMeters
}
