// Package kernel defines the abstract geometry kernel interface used
// by mesh export. Implementations provide solid modeling behind this
// interface so the export pipeline never depends on a specific CAD
// library.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface. Export needs only
// the primitives for node markers (spheres) and link struts (oriented
// cylinders).
type Kernel interface {
	// Primitives, centered at the origin.
	Sphere(radius float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	// Boolean operations
	Union(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees, applied X then Y then Z

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
