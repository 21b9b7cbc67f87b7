// Package rule runs business rule scripts attached to events.
//
// A rule is a JavaScript snippet evaluated in a fresh interpreter per call.
// The script sees two bound objects: event (alias activity), a live view whose
// mutations persist into the processed event, and workitem, a snapshot whose
// mutations are discarded. Every attribute with an identifier-like name is also
// bound as a variable holding its value array, so txtname[0] reads the first
// value.
//
// After execution the script variables isValid, errorCode, errorMessage,
// followUp and nextTask are inspected:
//
//	var isValid = workitem.get('amount')[0] < 100;
//	var errorCode = 'AMOUNT_TOO_HIGH';
//	var followUp = 20;
package rule
