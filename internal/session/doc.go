// Package session coordinates the saved contexts with the live cluster connection.
//
// A Session is either disconnected or connected to exactly one named context:
//
//	NoContext   --Switch(n), check ok-->    Connected(n)
//	Connected(a) --Switch(b), check ok-->   Connected(b)
//	any         --Switch(x), check fails--> NoContext
//	Connected(a) --Remove(a)-->             NoContext
//	Connected(a) --Remove(b)-->             Connected(a)
//
// Switch and Add only commit after the cluster answered GET / with 200, so a
// current context was always reachable at the moment it was selected. The
// session is handed to the shell and its commands instead of living in
// package-level state.
package session
