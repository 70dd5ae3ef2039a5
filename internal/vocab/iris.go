package vocab

// Standard ontology namespaces.
const (
	// RDF is the RDF syntax namespace.
	RDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// RDFS is the RDF Schema namespace.
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"

	// XSD is the XML Schema datatypes namespace.
	XSD = "http://www.w3.org/2001/XMLSchema#"

	// Prov is the W3C PROV-O namespace.
	Prov = "http://www.w3.org/ns/prov#"

	// Time is the W3C Time ontology namespace.
	Time = "http://www.w3.org/2006/time#"
)

// Aeronote instance namespaces. Every node minted by the template builder
// lives under one of these.
const (
	// EntityNS is the base IRI for data artifact entities. The local part
	// is the artifact's workspace-relative path.
	EntityNS = "https://aeronote.dev/entity/"

	// AgentNS is the base IRI for agent identities.
	AgentNS = "https://aeronote.dev/agent/"

	// ActivityNS is the base IRI for activity executions. The local part
	// is a generated uuid.
	ActivityNS = "https://aeronote.dev/activity/"

	// ActivityTypeNS is the base IRI for the closed set of activity
	// classes.
	ActivityTypeNS = "https://aeronote.dev/ontology/activity/"
)

// RDF / RDFS terms.
const (
	RDFType   = RDF + "type"
	RDFSLabel = RDFS + "label"
)

// XSD datatype IRIs.
const (
	XSDString   = XSD + "string"
	XSDDateTime = XSD + "dateTime"
	XSDDecimal  = XSD + "decimal"
	XSDInteger  = XSD + "integer"
)

// PROV-O classes.
const (
	ProvEntity   = Prov + "Entity"
	ProvActivity = Prov + "Activity"
	ProvAgent    = Prov + "Agent"
)

// PROV-O properties. These five plus the two timestamps are the whole
// relation vocabulary the template builder emits.
const (
	ProvWasGeneratedBy    = Prov + "wasGeneratedBy"
	ProvWasDerivedFrom    = Prov + "wasDerivedFrom"
	ProvWasAttributedTo   = Prov + "wasAttributedTo"
	ProvWasAssociatedWith = Prov + "wasAssociatedWith"
	ProvUsed              = Prov + "used"
	ProvStartedAtTime     = Prov + "startedAtTime"
	ProvEndedAtTime       = Prov + "endedAtTime"
)

// W3C Time ontology terms used by the average-duration artifact.
const (
	TimeDuration        = Time + "Duration"
	TimeNumericDuration = Time + "numericDuration"
	TimeUnitType        = Time + "unitType"
	TimeUnitHour        = Time + "unitHour"
)

// Prefixes maps the short prefixes accepted in Turtle and query text to
// their namespace IRIs. Serialization emits these in sorted prefix order.
var Prefixes = map[string]string{
	"rdf":  RDF,
	"rdfs": RDFS,
	"xsd":  XSD,
	"prov": Prov,
	"time": Time,
	"aero": EntityNS,
}
