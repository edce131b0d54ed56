// Package manifest reads reactor descriptor files.
//
// A reactor manifest lists the modules of one multi-module build together
// with their inter-module dependencies. It is the input of every reactor
// command; the core graph package never reads files itself.
//
// # Formats
//
// Three encodings of the same document are supported, chosen by file
// extension. TOML:
//
//	group = "org.example"
//
//	[[project]]
//	artifact = "api"
//	version  = "1.0.0"
//	path     = "api"
//
//	[[project]]
//	artifact     = "core"
//	path         = "core"
//	dependencies = ["api", "org.other:lib:2.0"]
//
// YAML and JSON use the same field names, with the project list under
// "projects".
//
// # Identities
//
// A project's groupId defaults to the top-level group. A dependency written
// without a colon names a project of the declaring project's group; otherwise
// it is "groupId:artifactId" with an optional trailing version that is
// ignored. Dependencies on projects that are not listed are kept: the graph
// drops them as external.
//
// # Discovery
//
// [Locate] searches a directory for reactor.toml, reactor.yaml, reactor.yml
// and reactor.json, in that order.
package manifest
