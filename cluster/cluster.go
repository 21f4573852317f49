/*
 * cluster.go, part of godock
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

/*Package cluster groups docked poses of the same ligand by geometric
similarity, with agglomerative hierarchical clustering over the matrix of
pairwise RMSDs. Two poses end up together when their families are, on
average, within the RMSD cutoff; each cluster is then represented by its
best-scored member.*/
package cluster

import (
	"fmt"
	"log"
	"math"
	"sort"

	v3 "github.com/rmera/godock/v3"
	"gonum.org/v1/gonum/mat"
)

//SentinelRMSD is the distance assigned to pose pairs with different atom
//counts, which can't be compared index by index. It is large enough that
//such pairs never end in the same cluster under any sane cutoff.
const SentinelRMSD float64 = 999.0

//RMSD returns the root-mean-square deviation between two poses, comparing
//coordinates index by index: it assumes both matrices list the atoms of the
//same ligand in the same order, which holds for poses read from the output
//of one docking run. No alignment is performed, as docked poses already
//share the receptor's frame of reference. If the poses have different atom
//counts, SentinelRMSD is returned.
func RMSD(a, b *v3.Matrix) float64 {
	n := a.NVecs()
	if n != b.NVecs() {
		return SentinelRMSD
	}
	diff := v3.Zeros(n)
	diff.Sub(a, b)
	return diff.Norm(2) / math.Sqrt(float64(n))
}

//RMSDMatrix returns the symmetric matrix of pairwise RMSDs between the given
//poses, with a zero diagonal. Pairs of poses with different atom counts get
//SentinelRMSD.
func RMSDMatrix(poses []*v3.Matrix) (*mat.SymDense, error) {
	n := len(poses)
	if n == 0 {
		return nil, fmt.Errorf("cluster.RMSDMatrix: No poses given")
	}
	for i, p := range poses {
		if p == nil {
			return nil, fmt.Errorf("cluster.RMSDMatrix: Pose %d is nil", i)
		}
	}
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.SetSym(i, j, RMSD(poses[i], poses[j]))
		}
	}
	return m, nil
}

//Cluster is a set of poses within the clustering cutoff of each other, on
//average. Members holds the pose indexes, ascending. Representative is the
//member with the lowest (best) score, and Score is its score.
type Cluster struct {
	Members        []int
	Representative int
	Score          float64
}

//Len returns the number of poses in the cluster.
func (C *Cluster) Len() int {
	return len(C.Members)
}

//String returns a one-line description of the cluster.
func (C *Cluster) String() string {
	return fmt.Sprintf("cluster of %d poses, represented by pose %d (score %5.2f)", C.Len(), C.Representative, C.Score)
}

//Options contains the options for the clustering.
type Options struct {
	cutoff float64
}

//DefaultOptions returns an Options with the default 2.0 A cutoff, the usual
//"same binding mode" threshold for drug-sized ligands.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.cutoff = 2.0
	return ret
}

//Cutoff returns the RMSD cutoff, in Angstroms, under which clusters are
//merged, and sets it, if a non-negative value is given. A cutoff of 0 still
//merges poses with identical coordinates.
func (o *Options) Cutoff(cutoff ...float64) float64 {
	ret := o.cutoff
	if len(cutoff) > 0 && cutoff[0] >= 0 {
		o.cutoff = cutoff[0]
	}
	return ret
}

//Clusters groups the given poses by pairwise RMSD, with scores giving the
//docking score of each pose (lower is better). It computes the RMSD matrix
//and hands it to FromMatrix; use RMSDMatrix plus FromMatrix yourself if you
//also want the matrix, e.g. for a heatmap.
func Clusters(poses []*v3.Matrix, scores []float64, options ...*Options) ([]*Cluster, error) {
	m, err := RMSDMatrix(poses)
	if err != nil {
		return nil, fmt.Errorf("cluster.Clusters: %w", err)
	}
	ret, err := FromMatrix(m, scores, options...)
	if err != nil {
		return nil, fmt.Errorf("cluster.Clusters: %w", err)
	}
	return ret, nil
}

//FromMatrix clusters poses given their precomputed RMSD matrix. Starting
//from one singleton cluster per pose, the two clusters with the smallest
//average pairwise RMSD are merged, repeatedly, until the smallest average
//exceeds the cutoff (average linkage). The clusters partition the poses:
//every pose is in exactly one cluster. Each cluster's representative is its
//best-scored member, and the clusters are returned best representative
//first. If scores is nil, all poses score 0, which is reported to the log:
//representatives are then just the lowest-index members. A single pose gives
//the trivial single-member partition. No poses is an error.
func FromMatrix(rmsd *mat.SymDense, scores []float64, options ...*Options) ([]*Cluster, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if rmsd == nil {
		return nil, fmt.Errorf("cluster.FromMatrix: Nil RMSD matrix given")
	}
	n, _ := rmsd.Dims()
	if n == 0 {
		return nil, fmt.Errorf("cluster.FromMatrix: No poses given")
	}
	if scores == nil {
		log.Printf("No scores given for %d poses. Will use 0.0 for all, so cluster representatives are arbitrary", n)
		scores = make([]float64, n)
	}
	if len(scores) != n {
		return nil, fmt.Errorf("cluster.FromMatrix: %d scores for %d poses", len(scores), n)
	}
	members := make([][]int, n)
	for i := range members {
		members[i] = []int{i}
	}
	for len(members) > 1 {
		besti, bestj := -1, -1
		bestd := math.Inf(1)
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				d := linkage(rmsd, members[i], members[j])
				if d < bestd {
					bestd = d
					besti, bestj = i, j
				}
			}
		}
		if bestd > o.cutoff {
			break
		}
		members[besti] = append(members[besti], members[bestj]...)
		members = append(members[:bestj], members[bestj+1:]...)
	}
	ret := make([]*Cluster, 0, len(members))
	for _, m := range members {
		sort.Ints(m)
		c := &Cluster{Members: m, Representative: m[0], Score: scores[m[0]]}
		for _, p := range m[1:] {
			if scores[p] < c.Score {
				c.Representative = p
				c.Score = scores[p]
			}
		}
		ret = append(ret, c)
	}
	sort.Stable(byScore(ret))
	return ret, nil
}

//linkage returns the average of the pairwise RMSDs between the members of
//two clusters.
func linkage(rmsd *mat.SymDense, a, b []int) float64 {
	sum := 0.0
	for _, i := range a {
		for _, j := range b {
			sum += rmsd.At(i, j)
		}
	}
	return sum / float64(len(a)*len(b))
}

type byScore []*Cluster

func (c byScore) Len() int { return len(c) }

func (c byScore) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

func (c byScore) Less(i, j int) bool { return c[i].Score < c[j].Score }
