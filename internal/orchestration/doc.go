// Package orchestration coordinates concurrent primality classification of
// candidate integers and aggregates the verdicts of several testers. It
// decouples business logic from presentation via the ResultPresenter interface.
package orchestration
