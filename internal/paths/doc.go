// Package paths resolves the files hactar-babel reads and writes.
//
// There are two families of paths:
//
//   - The tool's own configuration, located with github.com/adrg/xdg
//     (e.g. ~/.config/hactar-babel/config.yaml on Linux).
//   - Project paths, always resolved against an explicit project root
//     rather than the process working directory:
//
//	paths.RCPath(root, ".babelrc")             // <root>/.babelrc
//	paths.PackageManifest(root, "babel")       // <root>/node_modules/babel/package.json
//
// [SourceFiles] walks a project root and returns the JavaScript sources the
// reconciler should look at, skipping ignored directories such as
// node_modules.
package paths
