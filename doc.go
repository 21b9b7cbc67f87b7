// Package bpmflow provides an embeddable business process engine.
//
// Process models are parsed from BPMN diagrams carrying Imixs style
// extension items. Work items advance through a model by events; every
// event runs the plugin pipeline declared by the model profile:
//
//   - rule: JavaScript business rules validating or rerouting an event
//   - result: item markup applied to the work item
//   - application: presentation attributes of the next task
//
// Host applications interact with the engine via the Service facade:
//
//	srv, _ := bpmflow.New(ctx, bpmflow.WithMetaBaseURL("file:///models"))
//	m, _ := srv.LoadModel(ctx, "ticket.bpmn")
//	workItem, _ := srv.NewWorkItem(1000, m.Version())
//	_, err := srv.Apply(ctx, workItem, 10)
//
// Custom plugins are registered with WithPlugin under an id and the aliases
// used by model profiles.
package bpmflow
