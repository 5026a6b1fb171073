package tracking

import (
	"sync"

	"github.com/jkimani/device_tracking_system/internal/models"
	"github.com/sirupsen/logrus"
)

// Размер очереди доставки по умолчанию
const defaultBusQueueSize = 256

// UpdateFunc - колбэк подписчика на принятые обновления позиции
type UpdateFunc func(update models.TrackingUpdate)

type busEvent struct {
	entityID string
	update   models.TrackingUpdate
}

// Bus - шина фан-аута обновлений по сущностям. Доставка идет через буферную
// очередь и отдельную горутину, чтобы медленный подписчик не задерживал
// прием следующих выборок.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]map[string]UpdateFunc // entityID -> subscriberID -> колбэк

	queue  chan busEvent
	done   chan struct{}
	closed sync.Once
	logger *logrus.Logger
}

// NewBus создает шину и запускает воркер доставки
func NewBus(queueSize int, logger *logrus.Logger) *Bus {
	if queueSize <= 0 {
		queueSize = defaultBusQueueSize
	}
	b := &Bus{
		subscribers: make(map[string]map[string]UpdateFunc),
		queue:       make(chan busEvent, queueSize),
		done:        make(chan struct{}),
		logger:      logger,
	}
	go b.dispatchLoop()
	return b
}

// Subscribe регистрирует ровно один колбэк на пару (сущность, подписчик).
// Повторная подписка заменяет прежнюю регистрацию, а не добавляет дубль.
func (b *Bus) Subscribe(entityID, subscriberID string, fn UpdateFunc) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.subscribers[entityID]
	if !ok {
		subs = make(map[string]UpdateFunc)
		b.subscribers[entityID] = subs
	}
	subs[subscriberID] = fn
}

// Unsubscribe снимает регистрацию; отсутствующая регистрация - no-op.
// Снятие во время доставки уже поставленного в очередь события безопасно:
// такое событие еще может быть доставлено, новых не будет.
func (b *Bus) Unsubscribe(entityID, subscriberID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.subscribers[entityID]
	if !ok {
		return
	}
	delete(subs, subscriberID)
	if len(subs) == 0 {
		delete(b.subscribers, entityID)
	}
}

// SubscriberCount возвращает число активных подписчиков сущности
func (b *Bus) SubscriberCount(entityID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[entityID])
}

// Publish ставит принятое обновление в очередь доставки. Не блокирует
// вызывающего: при переполненной очереди событие отбрасывается с предупреждением.
func (b *Bus) Publish(update models.TrackingUpdate) {
	select {
	case <-b.done:
		return
	default:
	}

	select {
	case b.queue <- busEvent{entityID: update.EntityID, update: update}:
	default:
		b.logger.WithFields(logrus.Fields{
			"entity_id": update.EntityID,
			"update_id": update.ID,
		}).Warn("Subscription bus queue is full, dropping update delivery")
	}
}

// Close останавливает воркер доставки; уже поставленные события не доставляются
func (b *Bus) Close() {
	b.closed.Do(func() {
		close(b.done)
	})
}

func (b *Bus) dispatchLoop() {
	for {
		select {
		case <-b.done:
			return
		case ev := <-b.queue:
			b.deliver(ev)
		}
	}
}

// deliver снимает снапшот регистраций под RLock и зовет колбэки вне блокировки,
// поэтому подписчик может снять себя прямо из колбэка, не ломая рассылку
func (b *Bus) deliver(ev busEvent) {
	b.mu.RLock()
	fns := make([]UpdateFunc, 0, len(b.subscribers[ev.entityID]))
	for _, fn := range b.subscribers[ev.entityID] {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(ev.update)
	}
}
