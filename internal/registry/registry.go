package registry

import (
	"slices"

	"github.com/LordIdra/Netheopoiesis/internal/breeding"
	"github.com/LordIdra/Netheopoiesis/internal/plant"
)

// Registry: неизменяемый реестр растений и правил скрещивания.
// Создаётся только через Builder.Build и безопасен для параллельного чтения.
type Registry struct {
	plants []*plant.Definition
	pairs  []breeding.Pair
	byID   map[string]*plant.Definition
}

// BreedResult определяет исход скрещивания двух семян.
// Порядок аргументов передаётся парам как есть.
func (r *Registry) BreedResult(first, second string) breeding.Result {
	return breeding.Resolve(r.pairs, first, second)
}

// Plants возвращает копии описаний в порядке регистрации.
// Изменение результата не затрагивает реестр.
func (r *Registry) Plants() []*plant.Definition {
	out := make([]*plant.Definition, len(r.plants))
	for i, def := range r.plants {
		out[i] = def.Clone()
	}
	return out
}

// Pairs возвращает копию списка пар в порядке регистрации.
func (r *Registry) Pairs() []breeding.Pair {
	return slices.Clone(r.pairs)
}

// Plant ищет растение по идентификатору (при дубликатах первое зарегистрированное)
// и возвращает его копию.
func (r *Registry) Plant(id string) (*plant.Definition, bool) {
	def, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return def.Clone(), true
}

// Len возвращает количество зарегистрированных растений
func (r *Registry) Len() int {
	return len(r.plants)
}

// PairCount возвращает количество пар скрещивания
func (r *Registry) PairCount() int {
	return len(r.pairs)
}
