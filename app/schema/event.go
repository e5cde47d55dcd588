package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Shape of the provider's webhook notification document. Unknown event types
// are allowed through; only the envelope is enforced here.
const eventSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["event"],
  "properties": {
    "event": {
      "type": "string",
      "minLength": 1
    },
    "order_id": {
      "type": "string"
    },
    "merchant_order_ext_ref": {
      "type": "string"
    },
    "timestamp": {
      "type": "string"
    }
  }
}`

type EventValidator struct {
	schema *gojsonschema.Schema
}

func NewEventValidator() (*EventValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(eventSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile event schema: %w", err)
	}
	return &EventValidator{schema: schema}, nil
}

func (v *EventValidator) Validate(payload []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("invalid event document: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, item := range result.Errors() {
			details = append(details, item.String())
		}
		return fmt.Errorf("event document failed validation: %s", strings.Join(details, "; "))
	}
	return nil
}
