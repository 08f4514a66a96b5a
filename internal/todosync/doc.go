// Package todosync keeps a terminal view in step with the todo service.
//
// A Session owns the two visible states (auth and todos), the current auth
// form, and the rendered list. Each operation makes one service call and, on
// failure, returns a *Failure whose Error text is the single notification to
// show the user. There is no retry and no distinction between a rejection
// and a transport error beyond the wording of register and login failures.
//
// Every accepted mutation is followed by a Reconciler call. The default,
// FullReload, refetches the full list so the rendered rows always mirror the
// service.
package todosync
