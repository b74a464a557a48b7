package plant

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/LordIdra/Netheopoiesis/internal/breeding"
)

// StageCount: количество стадий роста у каждого растения.
const StageCount = 6

// ErrInvalidDefinition возвращается Validate при некорректном описании.
var ErrInvalidDefinition = errors.New("invalid plant definition")

// Definition описывает зарегистрированный тип растения.
// После регистрации значение не изменяется.
type Definition struct {
	ID                string
	Name              string
	Placements        []string
	GrowthRate        float64
	PurificationValue int
	Stages            []string
	Capabilities      []Capability

	// Pairs: правила скрещивания, которые растение вносит в общий пул
	// в указанном здесь порядке.
	Pairs []breeding.Pair
}

// Clone возвращает глубокую копию описания. Пары копируются как значения
// интерфейса: breeding.Rule неизменяем, прочие реализации остаются на
// совести их владельца.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Placements = slices.Clone(d.Placements)
	cp.Stages = slices.Clone(d.Stages)
	cp.Pairs = slices.Clone(d.Pairs)
	if d.Capabilities != nil {
		cp.Capabilities = make([]Capability, len(d.Capabilities))
		for i, c := range d.Capabilities {
			c.Drops = slices.Clone(c.Drops)
			cp.Capabilities[i] = c
		}
	}
	return &cp
}

// Primary возвращает основную возможность растения по фиксированному
// приоритету: harvestable, ticking, spawning, dropping, purifying.
func (d *Definition) Primary() (Capability, bool) {
	for _, kind := range precedence {
		if c, ok := d.Capability(kind); ok {
			return c, true
		}
	}
	return Capability{}, false
}

// Capability возвращает первый дескриптор указанного типа.
func (d *Definition) Capability(kind Kind) (Capability, bool) {
	for _, c := range d.Capabilities {
		if c.Kind == kind {
			return c, true
		}
	}
	return Capability{}, false
}

// Has сообщает, обладает ли растение возможностью kind.
func (d *Definition) Has(kind Kind) bool {
	_, ok := d.Capability(kind)
	return ok
}

// CanPlaceOn проверяет, можно ли посадить растение на указанный блок.
func (d *Definition) CanPlaceOn(placement string) bool {
	for _, p := range d.Placements {
		if p == placement {
			return true
		}
	}
	return false
}

// Validate проверяет обязательные поля описания и возвращает все найденные
// нарушения одной ошибкой.
func (d *Definition) Validate() error {
	var errs []error

	if strings.TrimSpace(d.ID) == "" {
		errs = append(errs, fmt.Errorf("%w: id is required", ErrInvalidDefinition))
	}
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, fmt.Errorf("%w: %s: name is required", ErrInvalidDefinition, d.ID))
	}
	if d.GrowthRate < 0 || d.GrowthRate > 1 {
		errs = append(errs, fmt.Errorf("%w: %s: growth rate %v outside [0, 1]", ErrInvalidDefinition, d.ID, d.GrowthRate))
	}
	if len(d.Stages) != StageCount {
		errs = append(errs, fmt.Errorf("%w: %s: expected %d growth stages, got %d", ErrInvalidDefinition, d.ID, StageCount, len(d.Stages)))
	}
	for i, c := range d.Capabilities {
		if !c.Kind.IsValid() {
			errs = append(errs, fmt.Errorf("%w: %s: capability[%d] has unknown kind %q", ErrInvalidDefinition, d.ID, i, c.Kind))
		}
	}
	for i, p := range d.Pairs {
		if breeding.IsNil(p) {
			errs = append(errs, fmt.Errorf("%w: %s: pair[%d] is nil", ErrInvalidDefinition, d.ID, i))
		}
	}

	return errors.Join(errs...)
}
