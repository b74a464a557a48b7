package api

import (
	"fmt"

	"github.com/LordIdra/Netheopoiesis/internal/app"
	"github.com/LordIdra/Netheopoiesis/internal/breeding"
	"github.com/LordIdra/Netheopoiesis/internal/plant"
)

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PlantDTO: растение в ответах API
type PlantDTO struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Placements        []string           `json:"placements"`
	GrowthRate        float64            `json:"growth_rate"`
	PurificationValue int                `json:"purification_value"`
	Stages            []string           `json:"stages"`
	Capabilities      []plant.Capability `json:"capabilities"`
	Primary           string             `json:"primary,omitempty"`
	PairCount         int                `json:"pair_count"`
}

// PairDTO: пара скрещивания. Поля правила заполнены только для breeding.Rule.
type PairDTO struct {
	Index        int     `json:"index"`
	Description  string  `json:"description"`
	Mother       string  `json:"mother,omitempty"`
	Father       string  `json:"father,omitempty"`
	Child        string  `json:"child,omitempty"`
	BreedChance  float64 `json:"breed_chance,omitempty"`
	SpreadChance float64 `json:"spread_chance,omitempty"`
}

// BreedDTO: результат попытки скрещивания
type BreedDTO struct {
	First   string `json:"first"`
	Second  string `json:"second"`
	Result  string `json:"result"`
	Success bool   `json:"success"`
	Pair    string `json:"pair,omitempty"` // только при успехе
	Child   string `json:"child,omitempty"`
}

func newPlantDTO(def *plant.Definition) PlantDTO {
	dto := PlantDTO{
		ID:                def.ID,
		Name:              def.Name,
		Placements:        def.Placements,
		GrowthRate:        def.GrowthRate,
		PurificationValue: def.PurificationValue,
		Stages:            def.Stages,
		Capabilities:      def.Capabilities,
		PairCount:         len(def.Pairs),
	}
	if c, ok := def.Primary(); ok {
		dto.Primary = string(c.Kind)
	}
	return dto
}

func newPairDTO(index int, p breeding.Pair) PairDTO {
	dto := PairDTO{Index: index, Description: describePair(p)}
	if rule, ok := p.(*breeding.Rule); ok {
		dto.Mother = rule.Mother()
		dto.Father = rule.Father()
		dto.Child = rule.Child()
		dto.BreedChance = rule.BreedChance()
		dto.SpreadChance = rule.SpreadChance()
	}
	return dto
}

func newBreedDTO(a app.Attempt) BreedDTO {
	dto := BreedDTO{
		First:   a.First,
		Second:  a.Second,
		Result:  a.Result.Type.String(),
		Success: a.Result.Succeeded(),
		Child:   a.Child,
	}
	// для NoPairs и Fail в Result.Pair лежит заглушка, а не сработавшее правило
	if a.Result.Succeeded() {
		dto.Pair = describePair(a.Result.Pair)
	}
	return dto
}

func describePair(p breeding.Pair) string {
	if st, ok := p.(fmt.Stringer); ok {
		return st.String()
	}
	return fmt.Sprintf("%T", p)
}
