package prov

import (
	"github.com/aeronote/aeronote/internal/rdf"
	"github.com/aeronote/aeronote/internal/vocab"
)

// ActivityType is the closed set of process classifications an activity can
// carry. The zero value is invalid; obtain values from the constants or
// ParseActivityType.
type ActivityType int

const (
	// Visualization covers plotting observation data for human labeling.
	Visualization ActivityType = iota + 1

	// AveragingTransformation covers aggregating a dataset into a single
	// average value.
	AveragingTransformation

	// GenericTransformation covers every other data-to-data step.
	GenericTransformation
)

// activityTypeInfo carries the per-type constants. Keying by the enum value
// instead of a string code means an unrecognized code cannot reach the
// builder undetected.
var activityTypeInfo = map[ActivityType]struct {
	code  string
	label string
	class string
}{
	Visualization: {
		code:  "visualization",
		label: "a data visualization activity",
		class: vocab.ActivityTypeNS + "Visualization",
	},
	AveragingTransformation: {
		code:  "averaging-transformation",
		label: "a data averaging activity",
		class: vocab.ActivityTypeNS + "AveragingTransformation",
	},
	GenericTransformation: {
		code:  "generic-transformation",
		label: "a data transformation activity",
		class: vocab.ActivityTypeNS + "GenericTransformation",
	},
}

// Valid reports whether t is one of the closed-set values.
func (t ActivityType) Valid() bool {
	_, ok := activityTypeInfo[t]
	return ok
}

// Code returns the stable string code ("visualization", ...). Empty for
// invalid values.
func (t ActivityType) Code() string {
	return activityTypeInfo[t].code
}

// Label returns the fixed human-readable label recorded as the activity's
// rdfs:label.
func (t ActivityType) Label() string {
	return activityTypeInfo[t].label
}

// Class returns the IRI of the activity class recorded alongside
// prov:Activity.
func (t ActivityType) Class() rdf.IRI {
	return rdf.IRI(activityTypeInfo[t].class)
}

func (t ActivityType) String() string {
	if !t.Valid() {
		return "invalid"
	}
	return t.Code()
}

// ParseActivityType maps a string code to its ActivityType. Codes outside
// the closed set fail with UnknownActivityTypeError.
func ParseActivityType(code string) (ActivityType, error) {
	for t, info := range activityTypeInfo {
		if info.code == code {
			return t, nil
		}
	}
	return 0, &UnknownActivityTypeError{Code: code}
}

// ActivityTypeCodes returns the accepted string codes in declaration order,
// for CLI help and error messages.
func ActivityTypeCodes() []string {
	return []string{
		Visualization.Code(),
		AveragingTransformation.Code(),
		GenericTransformation.Code(),
	}
}
