// Package capability defines the Babel presets hactar-babel can enable and
// the order in which they are considered.
//
// A capability pairs a preset identifier with the npm packages that provide
// it and a detector that decides, from a parsed source file, whether the
// preset is needed. A capability may require another one; it is only
// considered when its requirement was detected in the same pass.
package capability
