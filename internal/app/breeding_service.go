package app

import (
	"context"
	"fmt"
	"time"

	"github.com/LordIdra/Netheopoiesis/internal/breeding"
	"github.com/LordIdra/Netheopoiesis/internal/eventbus"
	"github.com/LordIdra/Netheopoiesis/internal/logging"
	"github.com/LordIdra/Netheopoiesis/internal/observability"
	"github.com/LordIdra/Netheopoiesis/internal/registry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Attempt: итог попытки скрещивания вместе с потомком правила
type Attempt struct {
	First  string
	Second string
	Result breeding.Result
	Child  string
}

// BreedingService выполняет попытки скрещивания поверх реестра:
// разрешает исход, пишет метрики и спан, публикует событие BreedResolved.
type BreedingService struct {
	registry *registry.Registry
	bus      eventbus.EventBus
	metrics  *observability.BreedMetrics
	source   string
	logger   *logging.Logger
}

// NewBreedingService создаёт сервис. bus и metrics могут быть nil.
// Без WithLogger используется логгер компонента "registry".
func NewBreedingService(reg *registry.Registry, bus eventbus.EventBus, metrics *observability.BreedMetrics, source string) *BreedingService {
	metrics.SetRegistrySize(reg.Len(), reg.PairCount())
	return &BreedingService{
		registry: reg,
		bus:      bus,
		metrics:  metrics,
		source:   source,
	}
}

// WithLogger заменяет логгер сервиса
func (s *BreedingService) WithLogger(l *logging.Logger) *BreedingService {
	s.logger = l
	return s
}

func (s *BreedingService) log() *logging.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logging.GetRegistryLogger()
}

// Registry возвращает реестр, на котором работает сервис
func (s *BreedingService) Registry() *registry.Registry {
	return s.registry
}

// Attempt разрешает скрещивание first и second.
// Ошибка публикации события логируется и не влияет на результат.
func (s *BreedingService) Attempt(ctx context.Context, first, second string) Attempt {
	ctx, span := observability.Tracer().Start(ctx, "breeding.attempt")
	defer span.End()

	start := time.Now()
	res := s.registry.BreedResult(first, second)
	s.metrics.ObserveResult(res.Type, time.Since(start))

	attempt := Attempt{First: first, Second: second, Result: res}
	if rule, ok := res.Pair.(*breeding.Rule); ok && res.Succeeded() {
		attempt.Child = rule.Child()
	}

	span.SetAttributes(
		attribute.String("breed.first", first),
		attribute.String("breed.second", second),
		attribute.String("breed.result", res.Type.String()),
	)
	s.log().Debug("Скрещивание %s + %s → %s %s", first, second, res.Type, attempt.Child)

	if err := s.publish(ctx, attempt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		s.log().Warn("Событие %s не опубликовано: %v", eventbus.BreedResolvedType, err)
	}
	return attempt
}

func (s *BreedingService) publish(ctx context.Context, a Attempt) error {
	if s.bus == nil {
		return nil
	}

	payload := eventbus.BreedResolved{
		First:  a.First,
		Second: a.Second,
		Result: a.Result.Type.String(),
		Child:  a.Child,
	}
	if st, ok := a.Result.Pair.(fmt.Stringer); ok && a.Result.Succeeded() {
		payload.Pair = st.String()
	}

	ev, err := eventbus.NewEnvelope(s.source, eventbus.BreedResolvedType, payload)
	if err != nil {
		return err
	}
	return s.bus.Publish(ctx, ev)
}
