// Package report renders finished scheduling runs for humans and tools.
//
// Console output (process tables, timelines, metrics, ASCII Gantt charts), the
// Markdown comparison report and the JSON result export all live here so the
// engine in package sim stays free of presentation concerns. Unset values
// (never started, never completed) are printed as -1 at this boundary only.
package report
