package schemas

import (
	"embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed subdocuments/*.schema.json
var subdocumentFS embed.FS

// Sub-document schema names, one per serialized college column.
const (
	SATScores               = "sat_scores"
	ACTScores               = "act_scores"
	PopularMajors           = "popular_majors"
	AdmissionConsiderations = "admission_considerations"
	GenderDistribution      = "gender_distribution"
	RaceEthnicity           = "race_ethnicity"
)

var (
	compileOnce sync.Once
	compiled    map[string]*gojsonschema.Schema
	compileErr  error
)

func subdocumentPath(name string) string {
	return fmt.Sprintf("subdocuments/%s.schema.json", name)
}

// compileSubdocuments compiles every embedded schema. The map is never
// written after this, so readers need no lock.
func compileSubdocuments() {
	names := []string{SATScores, ACTScores, PopularMajors, AdmissionConsiderations, GenderDistribution, RaceEthnicity}
	schemas := make(map[string]*gojsonschema.Schema, len(names))
	for _, name := range names {
		path := subdocumentPath(name)
		content, err := subdocumentFS.ReadFile(path)
		if err != nil {
			compileErr = &SchemaLoadError{Path: path, Message: "failed to read schema", Cause: err}
			return
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(content))
		if err != nil {
			compileErr = &SchemaLoadError{Path: path, Message: "failed to compile schema", Cause: err}
			return
		}
		schemas[name] = schema
	}
	compiled = schemas
}

// subdocumentSchema returns the compiled schema for name.
func subdocumentSchema(name string) (*gojsonschema.Schema, error) {
	compileOnce.Do(compileSubdocuments)
	if compileErr != nil {
		return nil, compileErr
	}
	schema, ok := compiled[name]
	if !ok {
		return nil, &SchemaLoadError{Path: subdocumentPath(name), Message: "unknown sub-document schema"}
	}
	return schema, nil
}

// ValidateSubdocument checks that raw JSON text has the shape of the named
// sub-document. It returns a *ValidationError for shape mismatches and a
// *SchemaLoadError when the schema itself is unusable.
func ValidateSubdocument(name, raw string) error {
	schema, err := subdocumentSchema(name)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	return resultError(result)
}
