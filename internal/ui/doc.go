// Package ui is tody's terminal front end, built on Bubble Tea.
//
// # Layout
//
// A one-line header (logo, session state, typewriter line) sits above the
// active panel. Toasts stack above the command bar at the bottom. Two panes
// share the screen:
//
//   - Main: the login or register form while signed out, the todo list once
//     signed in. Which one is shown is owned by todosync.Session.
//   - Pad: the local scratch pad (scratch.Pad). It is reachable signed in or
//     out and nothing in it is sent to the server.
//
// # Event Flow
//
//  1. Keys are routed to the focused pane; global keys (q, ?, T, tab) only
//     apply while no text input has focus.
//  2. Service calls run as tea.Cmds via dispatch and come back as an
//     actionMsg, so the event loop never blocks on the network.
//  3. On each actionMsg the model copies Session.Rows and shows the outcome
//     as a toast: success notices for 3s, failures for 5s.
//
// # Key Bindings
//
//   - ctrl+r: switch between login and register
//   - enter: next field / submit
//   - a: new todo or pad task
//   - space or x: toggle completed
//   - d: delete
//   - r: reload todos
//   - L: logout
//   - c: clear completed pad tasks
//   - tab or ctrl+p: switch between todos and pad
//   - T: cycle theme (saved to prefs)
//   - ? or f1: help
//   - q or ctrl+c: quit
package ui
