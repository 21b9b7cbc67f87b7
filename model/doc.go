// Package model contains the in-memory representation of a process model:
// tasks, the events connecting them and the work items flowing through them.
//
// A Model is built once from a diagram (see the bpmn sub-package) and is
// read-only afterwards, so it can be shared by concurrent transitions. Every
// entity is backed by an item.Collection so that plugins and rule scripts can
// treat tasks, events and work items uniformly.
package model
