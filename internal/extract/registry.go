package extract

import (
	"fmt"

	"github.com/codeatlas/codeatlas/internal/langreg"
)

// byLanguage maps a canonical language tag (internal/langreg) to the
// Extractor implementing its node-walk rules.
var byLanguage = map[string]Extractor{
	langreg.Go:         goExtractor{},
	langreg.Python:     pythonExtractor{},
	langreg.TypeScript: typescriptExtractor{},
	langreg.C:          cExtractor{},
	langreg.CPP:        cppExtractor{},
	langreg.CSharp:     csharpExtractor{},
	langreg.Rust:       rustExtractor{},
	langreg.Java:       javaExtractor{},
	langreg.PHP:        phpExtractor{},
}

// For looks up the Extractor registered for a canonical language tag.
func For(language string) (Extractor, error) {
	ex, ok := byLanguage[language]
	if !ok {
		return nil, fmt.Errorf("extract: no extractor registered for language %q", language)
	}
	return ex, nil
}
