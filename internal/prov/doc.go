// Package prov builds the fixed PROV-O statement constellation aeronote
// records for each workflow step.
//
// One Build call describes one activity execution: a set of input entities,
// a single output entity, the responsible agent, and a timed activity drawn
// from a closed type set. The result is a self-contained rdf.Graph;
// persisting it is the file store's job.
//
// The graph shape is fixed. For the output, activity, and agent:
// output wasGeneratedBy activity, output wasAttributedTo agent, activity
// wasAssociatedWith agent. For every input: output wasDerivedFrom input,
// input wasAttributedTo agent, activity used input. Node statements carry
// the rdf types, the activity's class and label, and its start/end
// timestamps.
package prov
