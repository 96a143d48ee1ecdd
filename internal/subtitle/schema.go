package subtitle

import (
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of Document.
func Schema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(&Document{})
}
