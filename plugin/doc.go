// Package plugin defines the contract of modules executed by the transition
// kernel on every processed event, together with the registry resolving
// profile plugin identifiers to module factories.
package plugin
