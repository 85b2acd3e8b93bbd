// Package scene defines the discovery node model for Constel.
// A scene is an immutable collection of typed, positioned nodes with
// undirected visual links between them. Collections are built in bulk,
// read-only for the rest of a session, and replaced wholesale.
package scene
