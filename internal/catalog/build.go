package catalog

import (
	"fmt"

	"github.com/LordIdra/Netheopoiesis/internal/breeding"
	"github.com/LordIdra/Netheopoiesis/internal/logging"
	"github.com/LordIdra/Netheopoiesis/internal/registry"
)

// Registry регистрирует все растения каталога в новом построителе
// в порядке файла и собирает неизменяемый реестр.
func (f *File) Registry(roll breeding.Roller) (*registry.Registry, error) {
	defs, err := f.Definitions(roll)
	if err != nil {
		return nil, err
	}

	b := registry.NewBuilder()
	for _, def := range defs {
		if err := b.AddPlant(def); err != nil {
			return nil, fmt.Errorf("catalog: add %s: %w", def.ID, err)
		}
		logging.Trace("Зарегистрировано растение %s (%d пар)", def.ID, len(def.Pairs))
	}

	r, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("catalog: build registry: %w", err)
	}
	logging.Debug("Реестр собран: %d растений, %d пар", r.Len(), r.PairCount())
	return r, nil
}
