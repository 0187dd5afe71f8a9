// Package reference loads the read-only reference data that college validation
// rules compare records against: a trusted snapshot of known values, exception
// lists, numeric bound tables and field lists.
package reference

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultDocument []byte

// Bound is an inclusive numeric range.
type Bound struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max" validate:"gtfield=Min"`
}

// Contains reports whether v lies within the bound.
func (b Bound) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Bounds holds the range table for numeric fields and test-score sections.
type Bounds struct {
	StudentsAdmittedPercent Bound `yaml:"studentsAdmittedPercent"`
	UndergraduateEnrollment Bound `yaml:"undergraduateEnrollment"`
	CostOfAttendanceInState Bound `yaml:"costOfAttendanceInState"`
	RetentionRate           Bound `yaml:"retentionRate"`
	GraduationRate4yr       Bound `yaml:"graduationRate4yr"`
	SATSection              Bound `yaml:"satSection"`
	SATTotal                Bound `yaml:"satTotal"`
	ACTComposite            Bound `yaml:"actComposite"`
}

// KnownValues is a trusted snapshot of selected facts for one college.
// Only the acceptance rate, sector and test policy are compared; the other
// values are informational.
type KnownValues struct {
	StudentsAdmittedPercent *float64 `yaml:"studentsAdmittedPercent"`
	UndergraduateEnrollment *int     `yaml:"undergraduateEnrollment"`
	CostOfAttendanceInState *int     `yaml:"costOfAttendanceInState"`
	RetentionRate           *float64 `yaml:"retentionRate"`
	GraduationRate4yr       *float64 `yaml:"graduationRate4yr"`
	InstitutionalSector     *string  `yaml:"institutionalSector"`
	TestPolicy              *string  `yaml:"testPolicy"`
}

// EarlyAdmissionPolicy records a school's published early-round offering.
type EarlyAdmissionPolicy struct {
	Slug           string `yaml:"slug" validate:"required"`
	Name           string `yaml:"name" validate:"required"`
	ExpectedEAType string `yaml:"expectedEAType" validate:"omitempty,oneof=EA SCEA REA"`
	HasED          bool   `yaml:"hasED"`
	HasEA          bool   `yaml:"hasEA"`
	Source         string `yaml:"source"`
}

// document is the on-disk YAML layout.
type document struct {
	EliteThreshold          float64                `yaml:"eliteThreshold" validate:"gt=0,lte=100"`
	RequiredFields          []string               `yaml:"requiredFields" validate:"required,min=1,dive,required"`
	ImportantFields         []string               `yaml:"importantFields" validate:"dive,required"`
	Bounds                  Bounds                 `yaml:"bounds"`
	KnownValues             map[string]KnownValues `yaml:"knownValues"`
	FreeTuitionSchools      []string               `yaml:"freeTuitionSchools" validate:"dive,required"`
	SpecialAdmissionSchools []string               `yaml:"specialAdmissionSchools" validate:"dive,required"`
	InternationalSchools    []string               `yaml:"internationalSchools" validate:"dive,required"`
	EarlyAdmissionPolicies  []EarlyAdmissionPolicy `yaml:"earlyAdmissionPolicies" validate:"dive"`
}

// Data is the loaded, immutable reference data shared by every validation in a run.
type Data struct {
	EliteThreshold         float64
	RequiredFields         []string
	ImportantFields        []string
	Bounds                 Bounds
	KnownValues            map[string]KnownValues
	International          SlugSet
	FreeTuition            SlugSet
	SpecialAdmission       SlugSet
	EarlyAdmissionPolicies []EarlyAdmissionPolicy
}

// Known returns the trusted snapshot for slug, if one exists.
func (d *Data) Known(slug string) (KnownValues, bool) {
	kv, ok := d.KnownValues[slug]
	return kv, ok
}

// KnownSlugs returns the slugs with a known-values entry, sorted.
func (d *Data) KnownSlugs() []string {
	slugs := make([]string, 0, len(d.KnownValues))
	for slug := range d.KnownValues {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Default returns the compiled-in reference data.
func Default() (*Data, error) {
	return Parse(nil, "(embedded defaults)")
}

// Load reads reference data from a YAML file. An empty path yields the defaults.
func Load(path string) (*Data, error) {
	if path == "" {
		return Default()
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read reference file", Cause: err}
	}
	return Parse(content, path)
}

// Parse decodes a reference document over the compiled-in defaults and
// validates the result. Keys absent from content keep their default values:
// bounds merge per field, knownValues merge per slug, and lists replace the
// default list. source is used in errors only.
func Parse(content []byte, source string) (*Data, error) {
	var doc document
	if err := yaml.Unmarshal(defaultDocument, &doc); err != nil {
		return nil, &LoadError{Path: "(embedded defaults)", Message: "failed to parse reference YAML", Cause: err}
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, &LoadError{Path: source, Message: "failed to parse reference YAML", Cause: err}
	}

	validate := validator.New()
	if err := validate.Struct(&doc); err != nil {
		return nil, &LoadError{Path: source, Message: "invalid reference data", Cause: err}
	}

	known := doc.KnownValues
	if known == nil {
		known = map[string]KnownValues{}
	}

	return &Data{
		EliteThreshold:         doc.EliteThreshold,
		RequiredFields:         doc.RequiredFields,
		ImportantFields:        doc.ImportantFields,
		Bounds:                 doc.Bounds,
		KnownValues:            known,
		International:          NewSet(doc.InternationalSchools...),
		FreeTuition:            NewSet(doc.FreeTuitionSchools...),
		SpecialAdmission:       NewSet(doc.SpecialAdmissionSchools...),
		EarlyAdmissionPolicies: doc.EarlyAdmissionPolicies,
	}, nil
}

// LoadError describes a reference file that could not be read, parsed or validated.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("reference data %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("reference data %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
