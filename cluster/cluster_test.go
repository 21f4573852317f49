/*
 * cluster_test.go, part of godock
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

package cluster

import (
	"fmt"
	"math"
	"testing"

	dock "github.com/rmera/godock"
	v3 "github.com/rmera/godock/v3"
)

func somePose(data ...float64) *v3.Matrix {
	m, err := v3.NewMatrix(data)
	if err != nil {
		panic(err.Error())
	}
	return m
}

func TestRMSD(Te *testing.T) {
	fmt.Println("RMSD test!")
	a := somePose(0, 0, 0, 1, 1, 1, 2, 0, 1)
	if r := RMSD(a, a); r != 0 {
		Te.Errorf("RMSD of a pose against itself is %g, expected exactly 0", r)
	}
	//b is a displaced by (1,2,2), so every atom moves 3 A and the RMSD is 3.
	b := somePose(1, 2, 2, 2, 3, 3, 3, 2, 3)
	if r := RMSD(a, b); math.Abs(r-3.0) > 1e-12 {
		Te.Errorf("Got RMSD %6.4f, expected 3.0", r)
	}
	if RMSD(a, b) != RMSD(b, a) {
		Te.Error("RMSD is not symmetric")
	}
	short := somePose(0, 0, 0)
	if r := RMSD(a, short); r != SentinelRMSD {
		Te.Errorf("Mismatched atom counts gave RMSD %g, expected the sentinel %g", r, SentinelRMSD)
	}
}

func TestRMSDMatrix(Te *testing.T) {
	fmt.Println("RMSD matrix test!")
	poses := []*v3.Matrix{
		somePose(0, 0, 0),
		somePose(1, 0, 0),
		somePose(5, 0, 0),
	}
	m, err := RMSDMatrix(poses)
	if err != nil {
		Te.Fatal(err)
	}
	n, _ := m.Dims()
	if n != 3 {
		Te.Fatalf("Matrix is %dx%d, expected 3x3", n, n)
	}
	for i := 0; i < n; i++ {
		if m.At(i, i) != 0 {
			Te.Errorf("Nonzero diagonal at %d: %g", i, m.At(i, i))
		}
		for j := 0; j < n; j++ {
			if m.At(i, j) != m.At(j, i) {
				Te.Errorf("Matrix not symmetric at (%d,%d)", i, j)
			}
		}
	}
	if math.Abs(m.At(0, 1)-1.0) > 1e-12 || math.Abs(m.At(0, 2)-5.0) > 1e-12 {
		Te.Errorf("Wrong distances: %g and %g, expected 1 and 5", m.At(0, 1), m.At(0, 2))
	}
	_, err = RMSDMatrix([]*v3.Matrix{})
	if err == nil {
		Te.Error("An empty pose list didn't fail")
	}
}

//Two identical poses always cluster together, and the best-scored one
//represents the cluster.
func TestIdenticalPoses(Te *testing.T) {
	fmt.Println("Identical poses test!")
	a := somePose(0, 0, 0, 1, 1, 1)
	b := somePose(0, 0, 0, 1, 1, 1)
	clusters, err := Clusters([]*v3.Matrix{a, b}, []float64{-8.5, -7.9})
	if err != nil {
		Te.Fatal(err)
	}
	if len(clusters) != 1 {
		Te.Fatalf("Got %d clusters, expected 1", len(clusters))
	}
	c := clusters[0]
	fmt.Println(c)
	if c.Len() != 2 || c.Representative != 0 || c.Score != -8.5 {
		Te.Errorf("Got %s, expected both poses represented by pose 0 at -8.5", c)
	}
}

//A cutoff of 0 never merges poses that differ at all.
func TestCutoffZero(Te *testing.T) {
	fmt.Println("Zero cutoff test!")
	poses := []*v3.Matrix{
		somePose(0, 0, 0),
		somePose(0.1, 0, 0),
		somePose(0.2, 0, 0),
	}
	o := DefaultOptions()
	o.Cutoff(0)
	clusters, err := Clusters(poses, []float64{-3, -5, -4}, o)
	if err != nil {
		Te.Fatal(err)
	}
	if len(clusters) != 3 {
		Te.Fatalf("Got %d clusters, expected 3 singletons", len(clusters))
	}
	//best representative first.
	if clusters[0].Representative != 1 || clusters[1].Representative != 2 || clusters[2].Representative != 0 {
		Te.Errorf("Clusters not sorted by representative score: %v %v %v", clusters[0], clusters[1], clusters[2])
	}
}

//Poses with different atom counts never share a cluster.
func TestMismatchedPoses(Te *testing.T) {
	fmt.Println("Mismatched poses test!")
	poses := []*v3.Matrix{
		somePose(0, 0, 0, 1, 1, 1),
		somePose(0, 0, 0, 1, 1, 1),
		somePose(0, 0, 0),
	}
	clusters, err := Clusters(poses, []float64{-2, -1, -9})
	if err != nil {
		Te.Fatal(err)
	}
	if len(clusters) != 2 {
		Te.Fatalf("Got %d clusters, expected 2", len(clusters))
	}
	if clusters[0].Representative != 2 || clusters[0].Len() != 1 {
		Te.Errorf("The odd pose should be alone, and first by score: %v", clusters[0])
	}
	if clusters[1].Len() != 2 || clusters[1].Representative != 0 {
		Te.Errorf("The twin poses should cluster together: %v", clusters[1])
	}
}

//Average linkage: a member joins a cluster only if it is close to the
//cluster as a whole, not just to its nearest member.
func TestAverageLinkage(Te *testing.T) {
	fmt.Println("Average linkage test!")
	poses := []*v3.Matrix{
		somePose(0, 0, 0),
		somePose(1.9, 0, 0),
		somePose(3.8, 0, 0),
	}
	clusters, err := Clusters(poses, []float64{-5, -4, -3})
	if err != nil {
		Te.Fatal(err)
	}
	//0 and 1 merge at 1.9. Then 2 is at (3.8+1.9)/2 = 2.85 on average from
	//the pair, over the 2.0 cutoff, even though it is within 1.9 of pose 1.
	if len(clusters) != 2 {
		Te.Fatalf("Got %d clusters, expected 2", len(clusters))
	}
	if clusters[0].Len() != 2 || clusters[0].Score != -5 {
		Te.Errorf("Unexpected first cluster %v", clusters[0])
	}
	if clusters[1].Len() != 1 || clusters[1].Representative != 2 {
		Te.Errorf("Unexpected second cluster %v", clusters[1])
	}
}

func TestTrivialAndDegenerate(Te *testing.T) {
	fmt.Println("Trivial cases test!")
	lone := somePose(0, 0, 0)
	clusters, err := Clusters([]*v3.Matrix{lone}, []float64{-7.0})
	if err != nil {
		Te.Fatal(err)
	}
	if len(clusters) != 1 || clusters[0].Len() != 1 || clusters[0].Representative != 0 || clusters[0].Score != -7.0 {
		Te.Errorf("A single pose should give its own trivial cluster: %v", clusters)
	}
	_, err = Clusters(nil, nil)
	if err == nil {
		Te.Error("Clustering no poses didn't fail")
	}
	//nil scores are allowed, with zeros (and a logged complaint).
	clusters, err = Clusters([]*v3.Matrix{lone, somePose(9, 9, 9)}, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if len(clusters) != 2 || clusters[0].Score != 0 {
		Te.Errorf("Scoreless clustering went wrong: %v", clusters)
	}
}

//The poses in the test files: two identical binding modes at -8.5 and -7.9,
//plus one displaced by 10 A.
func TestPoseFileClustering(Te *testing.T) {
	fmt.Println("Pose file clustering test!")
	poses, records, err := dock.ReadVinaPoses("../test/poses.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	m, err := RMSDMatrix(poses.Coords)
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(m.At(0, 2)-10.0) > 1e-6 {
		Te.Errorf("The displaced pose is at RMSD %6.4f, expected 10.0", m.At(0, 2))
	}
	clusters, err := FromMatrix(m, dock.Scores(records))
	if err != nil {
		Te.Fatal(err)
	}
	for _, c := range clusters {
		fmt.Println(c)
	}
	if len(clusters) != 2 {
		Te.Fatalf("Got %d clusters, expected 2", len(clusters))
	}
	if clusters[0].Len() != 2 || clusters[0].Representative != 0 || clusters[0].Score != -8.5 {
		Te.Errorf("Unexpected best cluster: %v", clusters[0])
	}
	if clusters[1].Len() != 1 || clusters[1].Score != -6.2 {
		Te.Errorf("Unexpected second cluster: %v", clusters[1])
	}
}
