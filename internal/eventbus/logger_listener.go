package eventbus

import (
	"context"

	"github.com/LordIdra/Netheopoiesis/internal/logging"
)

// StartLoggingListener подписывается на все события и пишет их в лог.
// Для BreedResolved выводится разобранная полезная нагрузка.
// Функция неблокирующая; logger == nil: глобальный логгер.
func StartLoggingListener(bus EventBus, logger *logging.Logger) (Subscription, error) {
	if logger == nil {
		logger = logging.Default()
	}

	sub, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		if ev.EventType == BreedResolvedType {
			var br BreedResolved
			if err := ev.Decode(&br); err == nil {
				logger.Debug("[EventBus] %s %s + %s → %s %s", ev.ID, br.First, br.Second, br.Result, br.Child)
				return
			}
		}
		logger.Debug("[EventBus] %s %s src=%s prio=%d size=%dB", ev.ID, ev.EventType, ev.Source, ev.Priority, len(ev.Payload))
	})
	if err != nil {
		return nil, err
	}
	logger.Info("🪵 LoggingListener: подписка на все события активирована")
	return sub, nil
}
