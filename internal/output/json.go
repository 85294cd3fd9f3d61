package output

import (
	json "github.com/goccy/go-json"

	"github.com/ch8101040/tashmash/internal/domain"
)

// JSONFormatter renders the full result, details included, as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
