// Package state holds the todo list as last rendered.
//
// Every mutation in tody is followed by a full reload, and each reload runs
// as its own tea.Cmd. Reloads can therefore overlap; the Store serializes
// their writes so the last one to finish wins without a data race.
//
// Replace, Clear and Fail take the write lock. Snapshot takes the read lock
// and returns copies, so the UI can hold a snapshot while a reload lands.
//
// The zero value is ready to use:
//
//	var store state.Store
//	store.Replace(todos)
//	snap := store.Snapshot()
package state
