package export

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/starfeel/star/internal/model"
)

// Schema returns the JSON Schema of the JSON result document.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&model.Result{})
	schema.Title = "STAR+FEEL analysis result"
	return json.MarshalIndent(schema, "", "  ")
}
