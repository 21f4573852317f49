/*
 * surface.go, part of godock
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

package grid

import "math"

//neighbors6 are the offsets to the 6 face-adjacent voxels.
var neighbors6 = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

//Surface returns the probe-accessible shell of the occupancy grid g: the
//voxels reachable by dilating the occupied set by the probe radius (in
//rounds of face-neighbor dilation, ceil(probe/spacing) of them) that are not
//themselves occupied. With a probe of 1.4 A, the usual water radius, the
//shell approximates the solvent-accessible surface layer. The shell is a
//visualization and inspection aid. It is not used by the cavity detection,
//which works on the raw occupancy. g is not modified. A non-positive probe
//returns an empty grid of the same geometry.
func Surface(g *Grid, probe float64) *Grid {
	shell, _ := NewGrid(g.nx, g.ny, g.nz, g.ox, g.oy, g.oz, g.spacing) //geometry comes from a valid grid
	if probe <= 0 {
		return shell
	}
	rounds := int(math.Ceil(probe / g.spacing))
	dilated := g.Copy()
	next := g.Copy()
	for r := 0; r < rounds; r++ {
		for k := 0; k < g.nz; k++ {
			for j := 0; j < g.ny; j++ {
				for i := 0; i < g.nx; i++ {
					if dilated.data[dilated.index(i, j, k)] {
						continue
					}
					for _, n := range neighbors6 {
						i2, j2, k2 := i+n[0], j+n[1], k+n[2]
						if dilated.InRange(i2, j2, k2) && dilated.data[dilated.index(i2, j2, k2)] {
							next.data[next.index(i, j, k)] = true
							break
						}
					}
				}
			}
		}
		dilated, next = next, dilated
		copy(next.data, dilated.data)
	}
	for i, v := range dilated.data {
		shell.data[i] = v && !g.data[i]
	}
	return shell
}
