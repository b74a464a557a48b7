package eventbus

// Типы событий
const (
	// BreedResolvedType публикуется после каждой попытки скрещивания
	BreedResolvedType = "BreedResolved"
)

// BreedResolved: полезная нагрузка события BreedResolvedType.
// Child заполняется только при успешном исходе правила с потомком.
type BreedResolved struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Result string `json:"result"`
	Pair   string `json:"pair,omitempty"`
	Child  string `json:"child,omitempty"`
}
