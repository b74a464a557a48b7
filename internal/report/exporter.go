package report

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/LordIdra/Netheopoiesis/internal/logging"
	"github.com/LordIdra/Netheopoiesis/internal/plant"
)

//go:embed template.md
var defaultTemplate string

// Summary: итог выгрузки
type Summary struct {
	Written int `json:"written"`
	Failed  int `json:"failed"`
}

// Exporter выгружает markdown страницы по растениям.
// Выгрузка best-effort: ошибки пишутся в лог и не возвращаются вызывающему.
type Exporter struct {
	outputDir    string
	templatePath string
	logger       *logging.Logger
}

// NewExporter создаёт экспортёр. Пустой templatePath: встроенный шаблон.
// logger == nil: логгер компонента "report".
func NewExporter(outputDir, templatePath string, logger *logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.GetReportLogger()
	}
	return &Exporter{
		outputDir:    outputDir,
		templatePath: templatePath,
		logger:       logger,
	}
}

// Export записывает по файлу на растение. Если шаблон недоступен, ничего
// не пишется. Сбой записи одного файла не прерывает выгрузку остальных.
func (e *Exporter) Export(plants []*plant.Definition) Summary {
	var summary Summary

	tmpl, ok := e.template()
	if !ok {
		return summary
	}

	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		e.logger.Error("Не удалось создать каталог %s: %v", e.outputDir, err)
		summary.Failed = len(plants)
		return summary
	}

	for _, def := range plants {
		path := filepath.Join(e.outputDir, FileName(def))
		if err := os.WriteFile(path, []byte(Render(tmpl, def)), 0644); err != nil {
			e.logger.Error("Не удалось записать %s: %v", path, err)
			summary.Failed++
			continue
		}
		e.logger.Trace("Записан %s", path)
		summary.Written++
	}

	e.logger.Info("Выгрузка завершена: записано %d, ошибок %d", summary.Written, summary.Failed)
	return summary
}

func (e *Exporter) template() (string, bool) {
	if e.templatePath == "" {
		return defaultTemplate, true
	}
	data, err := os.ReadFile(e.templatePath)
	if err != nil {
		e.logger.Error("Шаблон %s недоступен, выгрузка пропущена: %v", e.templatePath, err)
		return "", false
	}
	return string(data), true
}
