/*
 * grid.go, part of godock
 *
 * Copyright 2023 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

/*Package grid builds van der Waals occupancy grids from sets of atoms, and
extracts probe-accessible surface shells from them. The occupancy grid is the
input for the cavity detection in the cavity package. It can also be written
to disk, compressed or not, for visualization (see gridio.go).
*/
package grid

import (
	"fmt"
	"math"
	"runtime"

	dock "github.com/rmera/godock"
	v3 "github.com/rmera/godock/v3"
)

//Grid is a 3D boolean occupancy volume over a box of space. The box starts at
//the origin (the corner of the voxel with indexes 0,0,0) and extends for
//nx/ny/nz voxels of uniform side "spacing" (in Angstroms) along each axis.
//Every world coordinate inside the box maps to exactly one voxel, the one
//with indexes floor((coord-origin)/spacing).
type Grid struct {
	data       []bool //x varies fastest
	nx, ny, nz int
	ox, oy, oz float64
	spacing    float64
}

//NewGrid returns an empty grid with the given dimensions, origin and spacing.
//It returns an error on non-positive dimensions or spacing.
func NewGrid(nx, ny, nz int, ox, oy, oz, spacing float64) (*Grid, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, fmt.Errorf("grid.NewGrid: Non-positive dimensions: %d %d %d", nx, ny, nz)
	}
	if spacing <= 0 {
		return nil, fmt.Errorf("grid.NewGrid: Non-positive spacing: %4.2f", spacing)
	}
	g := new(Grid)
	g.nx, g.ny, g.nz = nx, ny, nz
	g.ox, g.oy, g.oz = ox, oy, oz
	g.spacing = spacing
	g.data = make([]bool, nx*ny*nz)
	return g, nil
}

//Dims returns the dimensions of the grid, in voxels per axis.
func (G *Grid) Dims() (int, int, int) {
	return G.nx, G.ny, G.nz
}

//Origin returns the world coordinates of the corner of the voxel (0,0,0).
func (G *Grid) Origin() (float64, float64, float64) {
	return G.ox, G.oy, G.oz
}

//Spacing returns the voxel side, in Angstroms.
func (G *Grid) Spacing() float64 {
	return G.spacing
}

func (G *Grid) index(i, j, k int) int {
	return (k*G.ny+j)*G.nx + i
}

//At returns whether the voxel i,j,k is occupied. Panics if out of range, as
//that is a caller bug.
func (G *Grid) At(i, j, k int) bool {
	if !G.InRange(i, j, k) {
		panic(fmt.Sprintf("goDock/grid.At: Voxel (%d,%d,%d) out of range (%d,%d,%d)", i, j, k, G.nx, G.ny, G.nz))
	}
	return G.data[G.index(i, j, k)]
}

//Set sets the voxel i,j,k to v. Panics if out of range.
func (G *Grid) Set(i, j, k int, v bool) {
	if !G.InRange(i, j, k) {
		panic(fmt.Sprintf("goDock/grid.Set: Voxel (%d,%d,%d) out of range (%d,%d,%d)", i, j, k, G.nx, G.ny, G.nz))
	}
	G.data[G.index(i, j, k)] = v
}

//InRange returns whether i,j,k are valid voxel indexes for the grid.
func (G *Grid) InRange(i, j, k int) bool {
	return i >= 0 && i < G.nx && j >= 0 && j < G.ny && k >= 0 && k < G.nz
}

//VoxelIndex returns the indexes of the voxel containing the world coordinates
//x,y,z. The returned indexes may be out of range if the point is outside the
//grid box; use InRange to check.
func (G *Grid) VoxelIndex(x, y, z float64) (int, int, int) {
	i := int(math.Floor((x - G.ox) / G.spacing))
	j := int(math.Floor((y - G.oy) / G.spacing))
	k := int(math.Floor((z - G.oz) / G.spacing))
	return i, j, k
}

//VoxelCenter returns the world coordinates of the center of the voxel i,j,k.
func (G *Grid) VoxelCenter(i, j, k int) (float64, float64, float64) {
	x := G.ox + (float64(i)+0.5)*G.spacing
	y := G.oy + (float64(j)+0.5)*G.spacing
	z := G.oz + (float64(k)+0.5)*G.spacing
	return x, y, z
}

//Count returns the number of occupied voxels.
func (G *Grid) Count() int {
	count := 0
	for _, v := range G.data {
		if v {
			count++
		}
	}
	return count
}

//Size returns the total number of voxels in the grid.
func (G *Grid) Size() int {
	return len(G.data)
}

//Copy returns a deep copy of the grid.
func (G *Grid) Copy() *Grid {
	ret, _ := NewGrid(G.nx, G.ny, G.nz, G.ox, G.oy, G.oz, G.spacing) //dims come from a valid grid
	copy(ret.data, G.data)
	return ret
}

//String returns a short description of the grid, for logs and tests.
func (G *Grid) String() string {
	return fmt.Sprintf("%dx%dx%d grid, %4.2f A spacing, origin (%4.2f,%4.2f,%4.2f), %d/%d voxels occupied", G.nx, G.ny, G.nz, G.spacing, G.ox, G.oy, G.oz, G.Count(), G.Size())
}

//Options contains the options for building an occupancy grid.
type Options struct {
	spacing float64
	padding float64
	cpus    int
	defrad  float64
}

//DefaultOptions returns an Options with the default values: 1.0 A spacing,
//2.0 A padding, the radius for unknown elements from the dock tables, and as
//many CPUs as the machine has.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.spacing = 1.0
	ret.padding = 2.0
	ret.cpus = runtime.NumCPU()
	ret.defrad = dock.DefVdw
	return ret
}

//Spacing returns the current voxel side, in Angstroms, and sets it, if a
//valid (positive) value is given. Smaller spacings give more faithful volumes
//at a cubic cost in memory and time.
func (o *Options) Spacing(spacing ...float64) float64 {
	ret := o.spacing
	if len(spacing) > 0 && spacing[0] > 0 {
		o.spacing = spacing[0]
	}
	return ret
}

//Padding returns the margin, in Angstroms, added on every side of the atoms'
//bounding box, and sets it, if a non-negative value is given.
func (o *Options) Padding(padding ...float64) float64 {
	ret := o.padding
	if len(padding) > 0 && padding[0] >= 0 {
		o.padding = padding[0]
	}
	return ret
}

//Cpus returns the number of goroutines to be used in the grid fill, and sets
//it, if a valid value is given.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

//DefRad returns the van der Waals radius used for elements absent from the
//dock tables, and sets it, if a valid value is given.
func (o *Options) DefRad(defrad ...float64) float64 {
	ret := o.defrad
	if len(defrad) > 0 && defrad[0] > 0 {
		o.defrad = defrad[0]
	}
	return ret
}

//Build voxelizes the atoms in mol, with coordinates coords, into an occupancy
//grid: every voxel within an atom's van der Waals radius of the atom's voxel
//is marked occupied, with a spherical inclusion test (dx²+dy²+dz² <= r², in
//voxel units) rather than a cubic one, to avoid over-filling at the corners.
//The grid encloses the bounding box of all the atoms plus the padding margin
//on every side. Hydrogens and atoms from hetero (non-polymer) residues do not
//contribute occupancy, by policy: cavities are defined by the protein heavy
//atoms alone. The occupied voxels form a superset of the true van der Waals
//volume at the chosen resolution.
func Build(coords *v3.Matrix, mol dock.Atomer, options ...*Options) (*Grid, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if coords == nil || mol == nil {
		return nil, fmt.Errorf("grid.Build: Nil coordinates or topology given")
	}
	natoms := coords.NVecs()
	if natoms == 0 {
		return nil, fmt.Errorf("grid.Build: Empty coordinate set given")
	}
	if natoms != mol.Len() {
		return nil, fmt.Errorf("grid.Build: Coordinates (%d) and topology (%d) don't match", natoms, mol.Len())
	}
	minx, miny, minz := coords.At(0, 0), coords.At(0, 1), coords.At(0, 2)
	maxx, maxy, maxz := minx, miny, minz
	for i := 1; i < natoms; i++ {
		x, y, z := coords.At(i, 0), coords.At(i, 1), coords.At(i, 2)
		minx = math.Min(minx, x)
		miny = math.Min(miny, y)
		minz = math.Min(minz, z)
		maxx = math.Max(maxx, x)
		maxy = math.Max(maxy, y)
		maxz = math.Max(maxz, z)
	}
	minx, miny, minz = minx-o.padding, miny-o.padding, minz-o.padding
	maxx, maxy, maxz = maxx+o.padding, maxy+o.padding, maxz+o.padding
	nx := int((maxx-minx)/o.spacing) + 1
	ny := int((maxy-miny)/o.spacing) + 1
	nz := int((maxz-minz)/o.spacing) + 1
	g, err := NewGrid(nx, ny, nz, minx, miny, minz, o.spacing)
	if err != nil {
		return nil, fmt.Errorf("grid.Build: %w", err)
	}
	cpus := o.cpus
	if cpus > nz {
		cpus = nz //not worth splitting one-voxel slabs further
	}
	if cpus <= 1 {
		fillSlab(g, coords, mol, o, 0, nz)
		return g, nil
	}
	//Each goroutine fills a contiguous slab of z-planes, so no voxel is
	//written by two workers and the result doesn't depend on cpus.
	results := make([]chan bool, cpus)
	for i := range results {
		results[i] = make(chan bool)
	}
	slab := nz / cpus
	for i := 0; i < cpus; i++ {
		k0 := i * slab
		k1 := k0 + slab
		if i == cpus-1 {
			k1 = nz
		}
		go func(k0, k1 int, result chan bool) {
			fillSlab(g, coords, mol, o, k0, k1)
			result <- true
		}(k0, k1, results[i])
	}
	for _, k := range results {
		<-k
	}
	return g, nil
}

//fillSlab marks the occupancy contributed by every atom to the voxels with
//k0 <= k < k1. Hydrogens and hetero atoms are skipped here.
func fillSlab(g *Grid, coords *v3.Matrix, mol dock.Atomer, o *Options, k0, k1 int) {
	natoms := coords.NVecs()
	for i := 0; i < natoms; i++ {
		at := mol.Atom(i)
		if at.Symbol == "H" || at.Het {
			continue
		}
		rad := at.Vdw
		if rad <= 0 {
			if r, ok := dock.VdwRadKnown(at.Symbol); ok {
				rad = r
			} else {
				rad = o.defrad
			}
		}
		x, y, z := coords.At(i, 0), coords.At(i, 1), coords.At(i, 2)
		ci, cj, ck := g.VoxelIndex(x, y, z)
		rvox := rad / g.spacing
		reach := int(rvox) + 1
		if ck+reach < k0 || ck-reach >= k1 {
			continue //the atom's sphere can't touch this slab
		}
		r2 := rvox * rvox
		for dk := -reach; dk <= reach; dk++ {
			k := ck + dk
			if k < k0 || k >= k1 {
				continue
			}
			for dj := -reach; dj <= reach; dj++ {
				j := cj + dj
				if j < 0 || j >= g.ny {
					continue
				}
				for di := -reach; di <= reach; di++ {
					i2 := ci + di
					if i2 < 0 || i2 >= g.nx {
						continue
					}
					if float64(di*di+dj*dj+dk*dk) <= r2 {
						g.data[g.index(i2, j, k)] = true
					}
				}
			}
		}
	}
}
