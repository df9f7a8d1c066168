// internal/event/types.go
package event

const (
	Started            EventType = "Started"            // Анимация запущена
	Paused             EventType = "Paused"             // Анимация поставлена на паузу
	Reconfigured       EventType = "Reconfigured"       // Конфигурация изменена
	FieldRebuilt       EventType = "FieldRebuilt"       // Поле пузырей пересоздано
	HeightRatioReached EventType = "HeightRatioReached" // Волна дошла до целевого уровня
)

// RebuiltData — данные события FieldRebuilt
type RebuiltData struct {
	Particles int
}

// HeightRatioData — данные события HeightRatioReached
type HeightRatioData struct {
	Ratio  float64
	Target float64
}
