package datagrid

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed catalog.schema.json
var catalogSchema []byte

// CatalogSchema returns the JSON schema catalogs are validated against.
func CatalogSchema() []byte {
	return catalogSchema
}

// ValidationError lists every schema violation found in a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("datagrid: catalog is invalid: %s", strings.Join(e.Problems, "; "))
}

// ValidateCatalog checks a JSON catalog document against the embedded schema.
// Schema violations are reported as *ValidationError.
func ValidateCatalog(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(catalogSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("datagrid: validate catalog: %w", err)
	}
	if result.Valid() {
		return nil
	}
	verr := &ValidationError{}
	for _, desc := range result.Errors() {
		verr.Problems = append(verr.Problems, desc.String())
	}
	return verr
}
