// Package reconcile brings a project's Babel setup in line with the syntax
// found in one source file.
//
// A pass walks the capability registry in order. For each capability whose
// requirement was detected earlier in the same pass, it runs the detector,
// installs any missing packages, and appends the preset to .babelrc if it is
// not already listed. Installs are trusted without verification; a failed
// install is logged and the pass carries on.
//
// Every membership check re-reads the configuration and every install check
// re-inspects node_modules, so capabilities later in a pass observe the
// writes of earlier ones.
package reconcile
