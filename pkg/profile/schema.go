package profile

import (
	_ "embed"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed profile.schema.json
var schemaJSON []byte

// ErrSchemaViolation marks documents whose shape does not match the profile
// schema.
var ErrSchemaViolation = errors.New("profile does not match schema")

// ValidateJSON checks raw JSON against the embedded profile schema.
func ValidateJSON(raw []byte) (err error) {
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	docLoader := gojsonschema.NewBytesLoader(raw)

	var res *gojsonschema.Result
	res, err = gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		err = errors.Wrap(err, "schema validation could not run")
		return err
	}

	if res.Valid() {
		return err
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	err = errors.Wrap(ErrSchemaViolation, strings.Join(msgs, "; "))
	return err
}
