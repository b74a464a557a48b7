package breeding

// Resolve проходит по парам в порядке регистрации и возвращает первый
// успешный результат. Если успеха нет, возвращается NoPairs (ни одна пара не
// распознала комбинацию) или Fail (хотя бы одна распознала, но условия не
// выполнены). В обоих случаях Pair указывает на первую пару списка как на
// заглушку; для пустого списка Pair равен nil, а тип — NoPairs.
func Resolve(pairs []Pair, first, second string) Result {
	fails := 0
	for _, pair := range pairs {
		result := pair.Classify(first, second)
		switch {
		case result == NotPair:
			continue
		case result == Fail:
			fails++
		case result.IsSuccess():
			return Result{Pair: pair, Type: result}
		default:
			// NoPairs или пустая строка от пары трактуются как "не распознала"
			continue
		}
	}

	if len(pairs) == 0 {
		return Result{Type: NoPairs}
	}
	if fails == 0 {
		return Result{Pair: pairs[0], Type: NoPairs}
	}
	return Result{Pair: pairs[0], Type: Fail}
}
