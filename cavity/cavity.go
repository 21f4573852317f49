/*
 * cavity.go, part of godock
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

/*Package cavity detects ligand-binding cavities (pockets) in a van der Waals
occupancy grid built by the grid package. The empty voxels are segmented into
face-connected components; the largest component is the bulk solvent around
the structure and is always discarded, and the remaining components over a
volume threshold are the pockets.*/
package cavity

import (
	"fmt"
	"log"
	"math"
	"sort"

	dock "github.com/rmera/godock"
	"github.com/rmera/godock/grid"
	v3 "github.com/rmera/godock/v3"
)

//Pocket is one detected cavity. Voxels are the grid indexes of the empty
//voxels forming the cavity, in grid scan order. Volume is in cubic Angstroms.
//Center is the unweighted centroid of the voxel centers, a 1x3 matrix in
//world coordinates. Score grows linearly with the volume, saturating at 1.
type Pocket struct {
	Voxels [][3]int
	Volume float64
	Center *v3.Matrix
	Score  float64
}

//Len returns the number of voxels in the pocket.
func (P *Pocket) Len() int {
	return len(P.Voxels)
}

//String returns a one-line description of the pocket.
func (P *Pocket) String() string {
	return fmt.Sprintf("pocket of %d voxels, %6.1f A^3, score %4.2f, centered at %s", P.Len(), P.Volume, P.Score, P.Center.String())
}

//Options contains the options for the pocket detection.
type Options struct {
	minvolume float64
	scorenorm float64
}

//DefaultOptions returns an Options with the default values: pockets under
//30 cubic Angstroms (roughly the volume of a single water site) are
//discarded, and the score saturates at 1000 cubic Angstroms.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.minvolume = 30.0
	ret.scorenorm = 1000.0
	return ret
}

//MinVolume returns the minimum volume, in cubic Angstroms, for a cavity to
//be reported, and sets it, if a non-negative value is given. Only cavities
//strictly larger than this are kept.
func (o *Options) MinVolume(minvolume ...float64) float64 {
	ret := o.minvolume
	if len(minvolume) > 0 && minvolume[0] >= 0 {
		o.minvolume = minvolume[0]
	}
	return ret
}

//ScoreNorm returns the volume, in cubic Angstroms, at which the pocket score
//saturates to 1, and sets it, if a positive value is given.
func (o *Options) ScoreNorm(scorenorm ...float64) float64 {
	ret := o.scorenorm
	if len(scorenorm) > 0 && scorenorm[0] > 0 {
		o.scorenorm = scorenorm[0]
	}
	return ret
}

//Pockets segments the empty voxels of g into face-connected (6-neighbor)
//components and returns the interior ones as pockets, in grid scan order.
//The largest component is taken to be the bulk solvent outside the
//structure, as the grid box always surrounds the atoms, so it is discarded
//no matter its volume; a cavity can thus never be the largest component.
//Components not strictly larger than the minimum volume are discarded too.
//A grid with no empty voxels, or where the only empty region is the
//exterior, gives an empty list and no error. Use SortBy to rank the result.
func Pockets(g *grid.Grid, options ...*Options) ([]*Pocket, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if g == nil {
		return nil, fmt.Errorf("cavity.Pockets: Nil grid given")
	}
	nx, ny, nz := g.Dims()
	//label 0 means "not empty", the components are numbered from 1.
	labels := make([]int32, nx*ny*nz)
	index := func(i, j, k int) int { return (k*ny+j)*nx + i }
	sizes := make([]int, 1, 10) //sizes[0] is a placeholder for label 0
	var queue [][3]int
	next := int32(1)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				if g.At(i, j, k) || labels[index(i, j, k)] != 0 {
					continue
				}
				//a new component, flood it.
				labels[index(i, j, k)] = next
				size := 1
				queue = append(queue[:0], [3]int{i, j, k})
				for len(queue) > 0 {
					v := queue[len(queue)-1]
					queue = queue[:len(queue)-1]
					for _, n := range [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}} {
						i2, j2, k2 := v[0]+n[0], v[1]+n[1], v[2]+n[2]
						if !g.InRange(i2, j2, k2) || g.At(i2, j2, k2) || labels[index(i2, j2, k2)] != 0 {
							continue
						}
						labels[index(i2, j2, k2)] = next
						size++
						queue = append(queue, [3]int{i2, j2, k2})
					}
				}
				sizes = append(sizes, size)
				next++
			}
		}
	}
	if next == 1 {
		return []*Pocket{}, nil //no empty voxels at all
	}
	exterior := int32(1)
	for l := int32(2); l < next; l++ {
		if sizes[l] > sizes[exterior] {
			exterior = l
		}
	}
	spacing := g.Spacing()
	vvol := spacing * spacing * spacing
	pockets := make(map[int32]*Pocket)
	order := make([]int32, 0, int(next)-2)
	for l := int32(1); l < next; l++ {
		if l == exterior {
			continue
		}
		if float64(sizes[l])*vvol <= o.minvolume {
			continue
		}
		pockets[l] = &Pocket{Voxels: make([][3]int, 0, sizes[l])}
		order = append(order, l)
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				p, ok := pockets[labels[index(i, j, k)]]
				if !ok {
					continue
				}
				p.Voxels = append(p.Voxels, [3]int{i, j, k})
			}
		}
	}
	ret := make([]*Pocket, 0, len(order))
	for _, l := range order {
		p := pockets[l]
		p.Volume = float64(len(p.Voxels)) * vvol
		p.Score = math.Min(1.0, p.Volume/o.scorenorm)
		cx, cy, cz := 0.0, 0.0, 0.0
		for _, v := range p.Voxels {
			x, y, z := g.VoxelCenter(v[0], v[1], v[2])
			cx += x
			cy += y
			cz += z
		}
		n := float64(len(p.Voxels))
		p.Center, _ = v3.NewMatrix([]float64{cx / n, cy / n, cz / n}) //3 numbers, can't fail
		ret = append(ret, p)
	}
	return ret, nil
}

//SortBy sorts pockets in place, in decreasing order of the given key, which
//can be "score" or "volume". The sorts are stable, so pockets tied on one
//key keep their relative order. An unknown key is not an error: it is
//reported to the log and "score" is used.
func SortBy(pockets []*Pocket, key string) {
	switch key {
	case "score":
		sort.Stable(byScore(pockets))
	case "volume":
		sort.Stable(byVolume(pockets))
	default:
		log.Printf("Unknown pocket sorting key %s. Will sort by score", key)
		sort.Stable(byScore(pockets))
	}
}

type byScore []*Pocket

func (p byScore) Len() int { return len(p) }

func (p byScore) Swap(i, j int) { p[i], p[j] = p[j], p[i] }

func (p byScore) Less(i, j int) bool { return p[i].Score > p[j].Score }

type byVolume []*Pocket

func (p byVolume) Len() int { return len(p) }

func (p byVolume) Swap(i, j int) { p[i], p[j] = p[j], p[i] }

func (p byVolume) Less(i, j int) bool { return p[i].Volume > p[j].Volume }

//Mask returns a grid with the geometry of g where only the voxels belonging
//to the given pockets are set. Write it to a GDX file to visualize the
//pockets along the occupancy.
func Mask(g *grid.Grid, pockets ...*Pocket) *grid.Grid {
	nx, ny, nz := g.Dims()
	ox, oy, oz := g.Origin()
	mask, _ := grid.NewGrid(nx, ny, nz, ox, oy, oz, g.Spacing()) //geometry comes from a valid grid
	for _, p := range pockets {
		for _, v := range p.Voxels {
			mask.Set(v[0], v[1], v[2], true)
		}
	}
	return mask
}

//PDBExport writes the pockets to the PDB file name, one pseudo-atom per
//voxel, in the fpocket style: the pocket rank (from 1) goes in the residue
//number, and the pocket score in the b-factor column, so coloring by
//b-factor in a viewer shows the best pockets.
func PDBExport(name string, g *grid.Grid, pockets ...*Pocket) error {
	if len(pockets) == 0 {
		return fmt.Errorf("cavity.PDBExport: No pockets given")
	}
	atoms := make([]*dock.Atom, 0, 100)
	coords := make([]float64, 0, 300)
	bfacts := make([]float64, 0, 100)
	id := 1
	for pi, p := range pockets {
		for _, v := range p.Voxels {
			at := &dock.Atom{Name: "C", ID: id, MolName: "STP", MolID: pi + 1, Chain: "P", Symbol: "C", Occupancy: 1.0, Het: true}
			atoms = append(atoms, at)
			x, y, z := g.VoxelCenter(v[0], v[1], v[2])
			coords = append(coords, x, y, z)
			bfacts = append(bfacts, p.Score)
			id++
		}
	}
	cr, err := v3.NewMatrix(coords)
	if err != nil {
		return fmt.Errorf("cavity.PDBExport: %w", err)
	}
	top := dock.NewTopology(0, atoms)
	err = dock.PDBFileWrite(name, cr, top, bfacts)
	if err != nil {
		return fmt.Errorf("cavity.PDBExport: %w", err)
	}
	return nil
}
