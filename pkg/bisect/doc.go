// Package bisect finds the single mod folder responsible for a problem by
// repeatedly halving the set of enabled folders and asking the user whether
// the problem persists.
//
// A Session owns everything one run mutates: the list of folders the run
// disabled and the state file mirroring it. The Controller drives the search
// through small interfaces (Finder, Toggler, Reporter and prompt.Asker) so
// each collaborator can be replaced in tests.
//
// Folders that were already disabled when the run started are never touched.
// Every disable is persisted before the next question is asked, and
// Session.Cleanup puts back exactly what the run changed.
package bisect
