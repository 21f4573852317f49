/*
 * analyze_test.go, part of godock
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

package analyze

import (
	"fmt"
	"testing"

	dock "github.com/rmera/godock"
)

func testSession(Te *testing.T) *Session {
	S, err := Load("../test/receptor.pdb", "../test/poses.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	return S
}

func TestSessionFlow(Te *testing.T) {
	fmt.Println("Session flow test!")
	S := testSession(Te)
	if S.NPoses() != 3 {
		Te.Fatalf("Session has %d poses, expected 3", S.NPoses())
	}
	g, err := S.Grid()
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(g)
	if g.Count() == 0 {
		Te.Error("The receptor grid is empty")
	}
	shell, err := S.Surface(1.4)
	if err != nil {
		Te.Fatal(err)
	}
	if shell.Count() == 0 {
		Te.Error("The receptor shell is empty")
	}
	//a 3-residue peptide has no enclosed cavities, and that's fine.
	pockets, err := S.Pockets()
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("pockets found:", len(pockets))
	rep, err := S.Report(0)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(rep)
	if rep.Total() == 0 {
		Te.Error("The best pose makes no contacts")
	}
	clusters, err := S.Clusters()
	if err != nil {
		Te.Fatal(err)
	}
	if len(clusters) != 2 || clusters[0].Score != -8.5 {
		Te.Errorf("Unexpected clustering: %v", clusters)
	}
	scores := S.Scores()
	if len(scores) != 3 || scores[0] != -8.5 || scores[2] != -6.2 {
		Te.Errorf("Unexpected scores: %v", scores)
	}
}

//Asking twice computes once: the cached results are returned, not rebuilt.
func TestSessionCaching(Te *testing.T) {
	fmt.Println("Session caching test!")
	S := testSession(Te)
	g1, err := S.Grid()
	if err != nil {
		Te.Fatal(err)
	}
	g2, _ := S.Grid()
	if g1 != g2 {
		Te.Error("The grid was rebuilt on the second call")
	}
	s1, err := S.Surface(1.4)
	if err != nil {
		Te.Fatal(err)
	}
	s2, _ := S.Surface(1.4)
	if s1 != s2 {
		Te.Error("The shell was rebuilt for the same probe")
	}
	s3, err := S.Surface(2.0)
	if err != nil {
		Te.Fatal(err)
	}
	if s3 == s1 {
		Te.Error("The shell was not rebuilt for a new probe")
	}
	r1, err := S.Report(1)
	if err != nil {
		Te.Fatal(err)
	}
	r2, _ := S.Report(1)
	if r1 != r2 {
		Te.Error("The report was recomputed on the second call")
	}
	m1, err := S.RMSDs()
	if err != nil {
		Te.Fatal(err)
	}
	m2, _ := S.RMSDs()
	if m1 != m2 {
		Te.Error("The RMSD matrix was recomputed on the second call")
	}
}

//Invalidation is explicit, and drops exactly what it says.
func TestSessionInvalidation(Te *testing.T) {
	fmt.Println("Session invalidation test!")
	S := testSession(Te)
	r1, err := S.Report(0)
	if err != nil {
		Te.Fatal(err)
	}
	other, err := S.Report(1)
	if err != nil {
		Te.Fatal(err)
	}
	S.InvalidateReport(0)
	r2, err := S.Report(0)
	if err != nil {
		Te.Fatal(err)
	}
	if r1 == r2 {
		Te.Error("InvalidateReport didn't drop the report")
	}
	if again, _ := S.Report(1); again != other {
		Te.Error("InvalidateReport(0) dropped the report of pose 1")
	}
	g1, err := S.Grid()
	if err != nil {
		Te.Fatal(err)
	}
	S.Invalidate()
	g2, err := S.Grid()
	if err != nil {
		Te.Fatal(err)
	}
	if g1 == g2 {
		Te.Error("Invalidate didn't drop the grid")
	}
}

func TestSessionErrors(Te *testing.T) {
	fmt.Println("Session error test!")
	_, err := NewSession(nil, nil, nil)
	if err == nil {
		Te.Error("A nil receptor didn't fail")
	}
	receptor, err := dock.PDBFileRead("../test/receptor.pdb", true)
	if err != nil {
		Te.Fatal(err)
	}
	S, err := NewSession(receptor, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err = S.Report(0); err == nil {
		Te.Error("A report from a pose-less session didn't fail")
	}
	if _, err = S.Clusters(); err == nil {
		Te.Error("Clustering a pose-less session didn't fail")
	}
	if _, err = S.Grid(); err != nil {
		Te.Error("A pose-less session should still detect cavities:", err)
	}
	poses, records, err := dock.ReadVinaPoses("../test/poses.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if err = S.SetPoses(poses, records[:2]); err == nil {
		Te.Error("Mismatched poses and records didn't fail")
	}
	if err = S.SetPoses(poses, records); err != nil {
		Te.Fatal(err)
	}
	if _, err = S.Report(5); err == nil {
		Te.Error("An out-of-range pose didn't fail")
	}
	//scoreless poses cluster anyway, with zeros.
	if err = S.SetPoses(poses, nil); err != nil {
		Te.Fatal(err)
	}
	scores := S.Scores()
	if len(scores) != 3 || scores[0] != 0 {
		Te.Errorf("Unexpected scoreless scores: %v", scores)
	}
	clusters, err := S.Clusters()
	if err != nil {
		Te.Fatal(err)
	}
	if len(clusters) != 2 {
		Te.Errorf("Scoreless clustering gave %d clusters, expected 2", len(clusters))
	}
}
