// Package dcc describes the host content-creation applications the browser
// serves and the load capability each host-side integration implements.
//
// The engine never touches host application state. It resolves a path and a
// requested operation; the host integration (Nuke menu, Maya shelf, Houdini
// 456 hook) supplies a Capability and performs the actual open, import, or
// reference call. Dispatch only routes the request.
package dcc
