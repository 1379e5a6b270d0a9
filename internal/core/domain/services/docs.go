// Package services holds domain services that span more than one aggregate.
//
// The package includes:
//   - TransitionPolicy: decides which actor may request which status change
//   - ScopeGenerator: builds the scope statement of an offer from a brief
package services
