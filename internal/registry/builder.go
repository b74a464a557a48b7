package registry

import (
	"errors"
	"fmt"

	"github.com/LordIdra/Netheopoiesis/internal/breeding"
	"github.com/LordIdra/Netheopoiesis/internal/plant"
)

var (
	ErrBuilderSealed = errors.New("registry builder already built")
	ErrNilDefinition = errors.New("plant definition is nil")
	ErrNilPair       = errors.New("breeding pair is nil")
)

// Builder собирает определения растений на этапе регистрации.
// Не безопасен для конкурентного использования: регистрация идёт из одной горутины.
type Builder struct {
	plants []*plant.Definition
	pairs  []breeding.Pair
	sealed bool
}

// NewBuilder создаёт пустой построитель реестра
func NewBuilder() *Builder {
	return &Builder{}
}

// AddPlant добавляет растение и все его пары скрещивания (в объявленном
// растением порядке) в конец общих списков. Дубликаты не отсекаются,
// повторная регистрация остаётся на совести вызывающего. Описание копируется,
// поэтому последующие изменения def на реестр не влияют.
func (b *Builder) AddPlant(def *plant.Definition) error {
	if b.sealed {
		return ErrBuilderSealed
	}
	if def == nil {
		return ErrNilDefinition
	}
	for i, p := range def.Pairs {
		if breeding.IsNil(p) {
			return fmt.Errorf("%w: %s pair[%d]", ErrNilPair, def.ID, i)
		}
	}

	cp := def.Clone()
	b.plants = append(b.plants, cp)
	b.pairs = append(b.pairs, cp.Pairs...)
	return nil
}

// Build замораживает построитель и возвращает неизменяемый реестр.
// Повторный вызов возвращает ErrBuilderSealed.
func (b *Builder) Build() (*Registry, error) {
	if b.sealed {
		return nil, ErrBuilderSealed
	}
	b.sealed = true

	r := &Registry{
		plants: b.plants,
		pairs:  b.pairs,
		byID:   make(map[string]*plant.Definition, len(b.plants)),
	}
	for _, def := range r.plants {
		if _, exists := r.byID[def.ID]; !exists {
			r.byID[def.ID] = def
		}
	}

	b.plants = nil
	b.pairs = nil
	return r, nil
}
