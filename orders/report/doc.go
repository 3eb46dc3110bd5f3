// Package report prints operator-facing progress of an order generation run.
//
// TextReporter writes human-readable lines such as
//
//	[1] Jacket (Clothing) - 2 pcs x 7750.00₽ = 15500.00₽ | Moscow
//
// JSONReporter writes one JSON object per event and line, for piping into other tools.
// Both satisfy runner.Reporter.
package report
