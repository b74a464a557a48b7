package plant

// Kind определяет поведенческую возможность растения
type Kind string

const (
	KindHarvestable Kind = "harvestable" // собирается инструментом
	KindTicking     Kind = "ticking"     // периодически обновляется
	KindSpawning    Kind = "spawning"    // призывает моба
	KindDropping    Kind = "dropping"    // роняет предметы
	KindPurifying   Kind = "purifying"   // очищает блоки вокруг (опционально меняет биом)
)

// precedence задаёт порядок, в котором отчёт выбирает основную возможность.
var precedence = []Kind{KindHarvestable, KindTicking, KindSpawning, KindDropping, KindPurifying}

// IsValid проверяет, известен ли тип возможности
func (k Kind) IsValid() bool {
	for _, known := range precedence {
		if k == known {
			return true
		}
	}
	return false
}

// Capability: помеченный дескриптор возможности растения.
// Заполняются только поля, относящиеся к Kind.
type Capability struct {
	Kind Kind `yaml:"kind" json:"kind"`

	// Harvest: предмет, получаемый при сборе (KindHarvestable).
	Harvest string `yaml:"harvest,omitempty" json:"harvest,omitempty"`
	// Entity: тип призываемого моба (KindSpawning).
	Entity string `yaml:"entity,omitempty" json:"entity,omitempty"`
	// Drops: возможные выпадающие предметы (KindDropping).
	Drops []string `yaml:"drops,omitempty" json:"drops,omitempty"`
	// Crux: блок, в который превращаются очищенные блоки (KindPurifying).
	Crux string `yaml:"crux,omitempty" json:"crux,omitempty"`
	// Biome: биом после очищения, пусто если биом не меняется.
	Biome string `yaml:"biome,omitempty" json:"biome,omitempty"`
}

// ChangesBiome сообщает, меняет ли очищение биом.
func (c Capability) ChangesBiome() bool {
	return c.Kind == KindPurifying && c.Biome != ""
}
