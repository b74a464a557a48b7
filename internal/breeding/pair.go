package breeding

import (
	"fmt"
	"math/rand"
	"reflect"
)

// Wildcard в шаблоне идентификатора совпадает с любым семенем.
const Wildcard = "*"

// Pair определяет правило скрещивания двух растений.
// Classify обязан для любой упорядоченной пары идентификаторов вернуть
// ровно один из вариантов: NotPair, Fail или успешный тип.
// Реализация не должна изменять состояние реестра. Rule использует
// случайный бросок, поэтому повторные вызовы могут давать разный исход.
type Pair interface {
	Classify(first, second string) ResultType
}

// PairFunc позволяет использовать обычную функцию как Pair.
type PairFunc func(first, second string) ResultType

// Classify вызывает f(first, second).
func (f PairFunc) Classify(first, second string) ResultType {
	return f(first, second)
}

// Roller возвращает случайное число в диапазоне [0, 1).
type Roller func() float64

// Rule: стандартная пара скрещивания: мать и отец (в любом порядке) дают
// потомка с шансом breedChance либо распространяются с шансом spreadChance.
// После создания правило не изменяется, поэтому его можно отдавать наружу.
//
// Бросок кубика распределяется по полосам: [0, breed) → Breed,
// [breed, breed+spread) → Spread, остальное → Fail.
type Rule struct {
	mother       string
	father       string
	child        string
	breedChance  float64
	spreadChance float64

	// nil означает math/rand
	roll Roller
}

// NewRule создаёт правило с источником случайности по умолчанию.
func NewRule(mother, father, child string, breedChance, spreadChance float64) *Rule {
	return &Rule{
		mother:       mother,
		father:       father,
		child:        child,
		breedChance:  breedChance,
		spreadChance: spreadChance,
	}
}

// WithRoller возвращает копию правила с другим источником случайности.
func (r *Rule) WithRoller(roll Roller) *Rule {
	if r == nil {
		return nil
	}
	cp := *r
	cp.roll = roll
	return &cp
}

func (r *Rule) Mother() string        { return r.mother }
func (r *Rule) Father() string        { return r.father }
func (r *Rule) Child() string         { return r.child }
func (r *Rule) BreedChance() float64  { return r.breedChance }
func (r *Rule) SpreadChance() float64 { return r.spreadChance }

// Matches проверяет, распознаёт ли правило комбинацию (порядок не важен).
// nil правило не распознаёт ничего.
func (r *Rule) Matches(first, second string) bool {
	if r == nil {
		return false
	}
	if matchID(r.mother, first) && matchID(r.father, second) {
		return true
	}
	return matchID(r.mother, second) && matchID(r.father, first)
}

// Classify реализует Pair.
func (r *Rule) Classify(first, second string) ResultType {
	if !r.Matches(first, second) {
		return NotPair
	}

	roll := r.rollDice()
	switch {
	case roll < r.breedChance:
		return Breed
	case roll < r.breedChance+r.spreadChance:
		return Spread
	default:
		return Fail
	}
}

func (r *Rule) String() string {
	if r == nil {
		return "<nil rule>"
	}
	return fmt.Sprintf("%s + %s -> %s", r.mother, r.father, r.child)
}

func (r *Rule) rollDice() float64 {
	if r.roll != nil {
		return r.roll()
	}
	return rand.Float64()
}

// IsNil сообщает, пуста ли пара, включая типизированный nil указатель
// внутри интерфейса.
func IsNil(p Pair) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func matchID(pattern, id string) bool {
	return pattern == Wildcard || pattern == id
}
