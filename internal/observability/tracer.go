package observability

import (
	"go.opentelemetry.io/otel"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// TracerName: имя инструментирования для спанов модуля
const TracerName = "github.com/LordIdra/Netheopoiesis"

// Tracer возвращает трассировщик глобального провайдера
func Tracer() oteltrace.Tracer {
	return otel.Tracer(TracerName)
}
