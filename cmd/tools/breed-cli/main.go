package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/LordIdra/Netheopoiesis/internal/breeding"
	"github.com/LordIdra/Netheopoiesis/internal/catalog"
	"github.com/LordIdra/Netheopoiesis/internal/logging"
	"github.com/LordIdra/Netheopoiesis/internal/registry"
	"github.com/LordIdra/Netheopoiesis/internal/report"
)

func main() {
	var (
		catalogPath = flag.String("catalog", "", "YAML catalog path (empty: built-in catalog)")
		command     = flag.String("cmd", "plants", "Command: plants, pairs, breed, simulate, export, validate")
		first       = flag.String("first", "", "First seed id (breed, simulate)")
		second      = flag.String("second", "", "Second seed id (breed, simulate)")
		trials      = flag.Int("n", 1000, "Number of attempts (simulate)")
		outDir      = flag.String("out", "docs/plants", "Output directory (export)")
		template    = flag.String("template", "", "Markdown template path (export, empty: built-in)")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *verbose {
		logging.SetLevel(logging.DEBUG)
	} else {
		logging.SetLevel(logging.WARN)
	}

	cf, err := catalog.LoadOrDefault(*catalogPath)
	if err != nil {
		log.Fatalf("❌ Failed to load catalog: %v", err)
	}
	reg, err := cf.Registry(nil)
	if err != nil {
		log.Fatalf("❌ Invalid catalog: %v", err)
	}

	out := os.Stdout
	switch *command {
	case "plants":
		listPlants(out, reg)
	case "pairs":
		listPairs(out, reg)
	case "breed":
		requireSeeds(*first, *second)
		printBreed(out, *first, *second, reg.BreedResult(*first, *second))
	case "simulate":
		requireSeeds(*first, *second)
		simulate(out, reg, *first, *second, *trials)
	case "export":
		summary := report.NewExporter(*outDir, *template, logging.Default()).Export(reg.Plants())
		fmt.Fprintf(out, "📄 Written: %d, failed: %d → %s\n", summary.Written, summary.Failed, *outDir)
		if summary.Failed > 0 {
			os.Exit(1)
		}
	case "validate":
		fmt.Fprintf(out, "✅ Catalog OK: %d plants, %d pairs\n", reg.Len(), reg.PairCount())
	default:
		fmt.Printf("❌ Unknown command: %s\n", *command)
		fmt.Println("Available commands: plants, pairs, breed, simulate, export, validate")
		os.Exit(1)
	}
}

func requireSeeds(first, second string) {
	if first == "" || second == "" {
		log.Fatalf("❌ -first and -second are required")
	}
}

// listPlants печатает растения в порядке регистрации
func listPlants(w io.Writer, reg *registry.Registry) {
	for _, def := range reg.Plants() {
		primary := "-"
		if c, ok := def.Primary(); ok {
			primary = string(c.Kind)
		}
		fmt.Fprintf(w, "%-20s %-24s growth=%s%% purification=%d primary=%s pairs=%d\n",
			def.ID, report.StripColor(def.Name), report.GrowthPercentage(def.GrowthRate),
			def.PurificationValue, primary, len(def.Pairs))
	}
}

// listPairs печатает пары в порядке проверки
func listPairs(w io.Writer, reg *registry.Registry) {
	for i, p := range reg.Pairs() {
		line := describe(p)
		if rule, ok := p.(*breeding.Rule); ok {
			line = fmt.Sprintf("%s (breed %.0f%%, spread %.0f%%)", line, rule.BreedChance()*100, rule.SpreadChance()*100)
		}
		fmt.Fprintf(w, "%3d. %s\n", i, line)
	}
}

// simulate выполняет n попыток и печатает распределение исходов
func simulate(w io.Writer, reg *registry.Registry, first, second string, n int) {
	if n <= 0 {
		n = 1
	}
	counts := make(map[breeding.ResultType]int)
	for i := 0; i < n; i++ {
		counts[reg.BreedResult(first, second).Type]++
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, string(t))
	}
	sort.Strings(types)

	fmt.Fprintf(w, "🎲 %s + %s, %d attempts\n", first, second, n)
	for _, t := range types {
		c := counts[breeding.ResultType(t)]
		fmt.Fprintf(w, "  %-10s %6d  %5.1f%%  %s\n", t, c, float64(c)*100/float64(n), strings.Repeat("█", c*40/n))
	}
}

// printBreed печатает исход; правило указывается только при успехе,
// для NoPairs и Fail в результате лежит заглушка.
func printBreed(w io.Writer, first, second string, res breeding.Result) {
	if !res.Succeeded() {
		fmt.Fprintf(w, "%s + %s → %s\n", first, second, res.Type)
		return
	}
	fmt.Fprintf(w, "%s + %s → %s (%s)\n", first, second, res.Type, describe(res.Pair))
}

func describe(p breeding.Pair) string {
	if p == nil {
		return "no pairs registered"
	}
	if st, ok := p.(fmt.Stringer); ok {
		return st.String()
	}
	return fmt.Sprintf("%T", p)
}
