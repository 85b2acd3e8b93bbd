// Package tessellate converts a node collection into triangle meshes
// using a geometry kernel. Each node becomes a sphere marker and each
// link becomes a cylindrical strut, so a constellation can be exported
// to mesh-based tooling.
package tessellate

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"

	"github.com/ludex/constel/pkg/kernel"
	"github.com/ludex/constel/pkg/scene"
)

// strutRadius is the cylinder radius used for link struts, in scene units.
const strutRadius = 1.0

// Tessellate produces one mesh per node marker and one per link strut
// using the provided geometry kernel. The input collection is read-only
// and never mutated. Links listed by both endpoints produce a single
// strut.
func Tessellate(nodes scene.Collection, k kernel.Kernel) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh

	for i := range nodes {
		mesh, err := markerMesh(k, &nodes[i])
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, mesh)
	}

	seen := make(map[[2]int]bool)
	for i := range nodes {
		for _, j := range nodes[i].Connections {
			if j < 0 || j >= len(nodes) || j == i {
				return nil, errors.Newf("tessellate: node %s links to invalid index %d", nodes[i].ID, j)
			}
			key := [2]int{min(i, j), max(i, j)}
			if seen[key] {
				continue
			}
			seen[key] = true

			mesh, err := strutMesh(k, &nodes[key[0]], &nodes[key[1]])
			if err != nil {
				return nil, err
			}
			meshes = append(meshes, mesh)
		}
	}

	return meshes, nil
}

// markerMesh builds the sphere marker for a single node. The sphere
// radius follows the node's render size.
func markerMesh(k kernel.Kernel, n *scene.Node) (*kernel.Mesh, error) {
	solid := k.Sphere(n.Size)
	solid = k.Translate(solid, n.Position.X, n.Position.Y, n.Position.Z)

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, errors.Wrapf(err, "tessellate: marker for node %s", n.ID)
	}
	mesh.Name = n.ID
	return mesh, nil
}

// strutMesh builds the cylinder joining two nodes. The kernel cylinder
// is axis-aligned on Z, so it is rotated into the link direction and
// translated to the midpoint.
func strutMesh(k kernel.Kernel, a, b *scene.Node) (*kernel.Mesh, error) {
	d := b.Position.Sub(a.Position)
	length := d.Length()
	if length == 0 {
		return nil, errors.Newf("tessellate: zero-length link %s-%s", a.ID, b.ID)
	}

	// Euler angles carrying +Z onto the link direction: tilt by the
	// polar angle around Y, then swing by the azimuth around Z.
	polar := math.Acos(d.Z/length) * 180 / math.Pi
	azimuth := math.Atan2(d.Y, d.X) * 180 / math.Pi

	solid := k.Cylinder(length, strutRadius, 0)
	solid = k.Rotate(solid, 0, polar, azimuth)

	mid := a.Position.Add(b.Position).Scale(0.5)
	solid = k.Translate(solid, mid.X, mid.Y, mid.Z)

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, errors.Wrapf(err, "tessellate: strut %s-%s", a.ID, b.ID)
	}
	mesh.Name = fmt.Sprintf("%s-%s", a.ID, b.ID)
	return mesh, nil
}
