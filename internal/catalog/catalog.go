package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/LordIdra/Netheopoiesis/internal/breeding"
	"github.com/LordIdra/Netheopoiesis/internal/plant"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

var (
	// ErrUnknownPlant: пара ссылается на растение, которого нет в каталоге.
	ErrUnknownPlant = errors.New("unknown plant")
	// ErrDuplicatePlant: идентификатор растения встречается дважды.
	ErrDuplicatePlant = errors.New("duplicate plant id")
)

// File: корневая структура YAML каталога растений.
//
// Пример:
//
//	plants:
//	  - id: NPS_GRAINY
//	    name: "&eGrainy Seed"
//	    placements: [NPS_NETHERRACK]
//	    growth_rate: 0.08
//	    purification: 2
//	    stages: [h0, h1, h2, h3, h4, h5]
//	    capabilities:
//	      - kind: harvestable
//	        harvest: NPS_GRAINY_DUST
//	    pairs:
//	      - mother: NPS_SPINDLE
//	        father: NPS_BEADED
//	        breed_chance: 0.3
//	        spread_chance: 0.1
type File struct {
	Plants []PlantEntry `yaml:"plants"`
}

// PlantEntry описывает одно растение в каталоге
type PlantEntry struct {
	ID           string             `yaml:"id"`
	Name         string             `yaml:"name"`
	Placements   []string           `yaml:"placements"`
	GrowthRate   float64            `yaml:"growth_rate"`
	Purification int                `yaml:"purification"`
	Stages       []string           `yaml:"stages"`
	Capabilities []plant.Capability `yaml:"capabilities"`
	Pairs        []PairEntry        `yaml:"pairs"`
}

// PairEntry: правило скрещивания. Если Child пуст, потомком считается
// растение, в котором объявлена пара.
type PairEntry struct {
	Mother       string  `yaml:"mother"`
	Father       string  `yaml:"father"`
	Child        string  `yaml:"child,omitempty"`
	BreedChance  float64 `yaml:"breed_chance"`
	SpreadChance float64 `yaml:"spread_chance"`
}

// Load читает каталог с диска
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %q: %w", path, err)
	}
	defer f.Close()

	cf, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %q: %w", path, err)
	}
	return cf, nil
}

// LoadFromReader разбирает YAML каталог. Неизвестные ключи считаются ошибкой.
func LoadFromReader(r io.Reader) (*File, error) {
	var cf File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil {
		if errors.Is(err, io.EOF) {
			return &cf, nil
		}
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}
	return &cf, nil
}

// Default возвращает встроенный каталог
func Default() (*File, error) {
	return LoadFromReader(bytes.NewReader(defaultCatalog))
}

// LoadOrDefault читает каталог по пути или встроенный, если путь пуст
func LoadOrDefault(path string) (*File, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Definitions превращает записи каталога в описания растений.
// roll передаётся в каждое правило (nil: math/rand).
// Все ошибки проверки собираются и возвращаются одной ошибкой.
func (f *File) Definitions(roll breeding.Roller) ([]*plant.Definition, error) {
	known := make(map[string]bool, len(f.Plants))
	var errs []error
	for _, p := range f.Plants {
		if known[p.ID] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicatePlant, p.ID))
		}
		known[p.ID] = true
	}

	defs := make([]*plant.Definition, 0, len(f.Plants))
	for _, p := range f.Plants {
		def := &plant.Definition{
			ID:                p.ID,
			Name:              p.Name,
			Placements:        p.Placements,
			GrowthRate:        p.GrowthRate,
			PurificationValue: p.Purification,
			Stages:            p.Stages,
			Capabilities:      p.Capabilities,
		}

		for i, pe := range p.Pairs {
			child := pe.Child
			if child == "" {
				child = p.ID
			}
			for _, ref := range []string{pe.Mother, pe.Father, child} {
				if ref != breeding.Wildcard && !known[ref] {
					errs = append(errs, fmt.Errorf("%w: %s pair[%d] references %q", ErrUnknownPlant, p.ID, i, ref))
				}
			}
			if child == breeding.Wildcard {
				errs = append(errs, fmt.Errorf("%w: %s pair[%d] child cannot be a wildcard", ErrUnknownPlant, p.ID, i))
			}
			if pe.BreedChance < 0 || pe.SpreadChance < 0 || pe.BreedChance+pe.SpreadChance > 1 {
				errs = append(errs, fmt.Errorf("%w: %s pair[%d] chances %v/%v outside [0, 1]",
					plant.ErrInvalidDefinition, p.ID, i, pe.BreedChance, pe.SpreadChance))
			}

			rule := breeding.NewRule(pe.Mother, pe.Father, child, pe.BreedChance, pe.SpreadChance).WithRoller(roll)
			def.Pairs = append(def.Pairs, rule)
		}

		if err := def.Validate(); err != nil {
			errs = append(errs, err)
		}
		defs = append(defs, def)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog: %w", errors.Join(errs...))
	}
	return defs, nil
}
