package breeding

// ResultType описывает исход проверки пары семян.
// Тип открыт: реализации Pair могут объявлять собственные успешные варианты.
type ResultType string

const (
	// NotPair: пара не распознаёт комбинацию идентификаторов.
	// Используется только внутри сканирования и никогда не возвращается вызывающему.
	NotPair ResultType = "not_pair"
	// Fail: пара распознала комбинацию, но условия скрещивания не выполнены.
	Fail ResultType = "fail"
	// NoPairs: ни одна зарегистрированная пара не распознаёт комбинацию.
	NoPairs ResultType = "no_pairs"

	// Breed: скрещивание удалось, появляется потомок.
	Breed ResultType = "breed"
	// Spread: одно из родительских растений распространилось на соседний блок.
	Spread ResultType = "spread"
)

// IsSuccess сообщает, является ли тип конкретным успешным исходом.
func (t ResultType) IsSuccess() bool {
	switch t {
	case NotPair, Fail, NoPairs, "":
		return false
	default:
		return true
	}
}

// String возвращает строковое представление типа
func (t ResultType) String() string {
	return string(t)
}

// Result: снимок результата одного запроса скрещивания.
// При успехе Pair указывает на сработавшую пару. Для NoPairs и Fail это
// заглушка (первая зарегистрированная пара), а не правило, давшее исход.
// Pair равен nil только если в реестре нет ни одной пары.
type Result struct {
	Pair Pair
	Type ResultType
}

// Succeeded сокращение для r.Type.IsSuccess().
func (r Result) Succeeded() bool {
	return r.Type.IsSuccess()
}
