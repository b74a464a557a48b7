package report

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/LordIdra/Netheopoiesis/internal/plant"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// colorCode совпадает с кодами форматирования Minecraft (&6, §l, ...)
var colorCode = regexp.MustCompile(`(?i)[&§][0-9a-fk-orx]`)

// StripColor удаляет коды цвета и форматирования из строки
func StripColor(s string) string {
	return colorCode.ReplaceAllString(s, "")
}

// TitleCase переводит идентификатор вида "NETHER_WART" в "Nether Wart".
// Границами слов считаются только пробел и '_', дефис слово не разрывает:
// "jack-o-lantern" → "Jack-o-lantern".
func TitleCase(s string) string {
	// Caser хранит состояние, поэтому создаётся на каждый вызов
	caser := cases.Title(language.Und, cases.NoLower)
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		w = strings.ToLower(w)
		first, rest := firstRune(w)
		words[i] = caser.String(first) + rest
	}
	return strings.Join(words, " ")
}

func firstRune(s string) (string, string) {
	_, size := utf8.DecodeRuneInString(s)
	return s[:size], s[size:]
}

// FileName возвращает имя markdown файла для растения
func FileName(def *plant.Definition) string {
	name := strings.ToLower(StripColor(def.Name))
	return strings.ReplaceAll(name, " ", "-") + ".md"
}

// GrowthPercentage форматирует скорость роста как процент с точностью до
// двух знаков без лишних нулей: 0.09 → "9", 0.0825 → "8.25".
func GrowthPercentage(rate float64) string {
	v := math.Round(rate*100*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Render подставляет поля растения в шаблон
func Render(template string, def *plant.Definition) string {
	var places strings.Builder
	for _, p := range def.Placements {
		places.WriteString("- ")
		places.WriteString(TitleCase(StripColor(strings.ReplaceAll(p, "NPS_", ""))))
		places.WriteString("\n")
	}

	feature, desc := describe(def)

	pairs := []string{
		"{NAME}", TitleCase(StripColor(def.Name)),
		"{PLACEMENT_LIST}", places.String(),
		"{GROWTH_RATE_PERCENTAGE}", GrowthPercentage(def.GrowthRate),
		"{PURIFICATION_VALUE}", strconv.Itoa(def.PurificationValue),
		"{TYPE_FEATURE}", feature,
		"{TYPE_DESC}", desc,
	}
	for i := 0; i < plant.StageCount; i++ {
		hash := ""
		if i < len(def.Stages) {
			hash = def.Stages[i]
		}
		pairs = append(pairs, fmt.Sprintf("{HASH_STAGE_%d}", i), hash)
	}

	return strings.NewReplacer(pairs...).Replace(template)
}

// describe возвращает заголовок и описание основной возможности растения.
// Без возможностей плейсхолдеры заменяются пустыми строками.
func describe(def *plant.Definition) (string, string) {
	c, ok := def.Primary()
	if !ok {
		return "", ""
	}

	switch c.Kind {
	case plant.KindHarvestable:
		return "Harvesting Tool Output", "When harvested, this plant will drop: " + itemName(c.Harvest)
	case plant.KindTicking:
		return "On Tick", ""
	case plant.KindSpawning:
		return "Spawns Mob", TitleCase(c.Entity)
	case plant.KindDropping:
		var drops strings.Builder
		for _, d := range c.Drops {
			drops.WriteString("- ")
			drops.WriteString(itemName(d))
			drops.WriteString("\n")
		}
		return "Drops Items", drops.String()
	case plant.KindPurifying:
		desc := "Purifies nearby blocks into: " + StripColor(c.Crux)
		if c.ChangesBiome() {
			desc += " and changes the Biome to: " + c.Biome
		}
		return "Purification", desc
	default:
		return "", ""
	}
}

// itemName: отображаемые имена (с пробелами или кодами цвета) выводятся
// как есть без цвета, идентификаторы материалов приводятся к Title Case.
func itemName(s string) string {
	if strings.ContainsAny(s, " &§") {
		return StripColor(s)
	}
	return TitleCase(strings.TrimPrefix(s, "NPS_"))
}
