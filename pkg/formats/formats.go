// Package formats provides parsers for the Wavefront model formats the viewer
// loads: OBJ geometry and MTL material libraries.
package formats
