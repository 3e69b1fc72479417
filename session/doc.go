// Package session holds the state of one editing session: the current source
// text, its diagnostics, and the result of the last run.
//
// A Session is driven by the editor's events:
//
//   - [Session.OnSourceChange] replaces the source, relints it synchronously
//     and notifies the configured listener.
//   - [Session.OnRunRequested] executes the source as it is at that moment.
//     Only one run may be outstanding; a second request fails with
//     [ErrRunInProgress] instead of queueing.
//   - [Session.OnResetRequested] restores the default source and clears both
//     the diagnostics and the result.
//   - [Session.OnClearOutput] clears only the result.
//
// The display surface is read through accessors: [Session.Diagnostics],
// [Session.Output] and [Session.Succeeded].
//
// Session is safe for concurrent use.
package session
