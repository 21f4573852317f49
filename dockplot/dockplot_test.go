/*
 * dockplot_test.go, part of godock
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

/*These tests draw the figures for the test receptor and poses into the test
directory, so they double as little usage examples.*/

package dockplot

import (
	"fmt"
	"testing"

	dock "github.com/rmera/godock"
	"github.com/rmera/godock/cavity"
	"github.com/rmera/godock/cluster"
	"github.com/rmera/godock/contact"
	"github.com/rmera/godock/grid"
)

func TestPocketBars(Te *testing.T) {
	fmt.Println("Pocket bars test!")
	g, _ := grid.NewGrid(12, 12, 12, 0, 0, 0, 1.0)
	for k := 2; k <= 9; k++ {
		for j := 2; j <= 9; j++ {
			for i := 2; i <= 9; i++ {
				g.Set(i, j, k, true)
			}
		}
	}
	for k := 4; k <= 7; k++ {
		for j := 4; j <= 7; j++ {
			for i := 4; i <= 7; i++ {
				g.Set(i, j, k, false)
			}
		}
	}
	pockets, err := cavity.Pockets(g)
	if err != nil {
		Te.Fatal(err)
	}
	cavity.SortBy(pockets, "score")
	err = PocketBars(pockets, "Test pockets", "../test/pocket_bars")
	if err != nil {
		Te.Error(err)
	}
	err = PocketBars(nil, "Empty", "../test/should_not_exist")
	if err == nil {
		Te.Error("Plotting no pockets didn't fail")
	}
}

func TestScoreHistogram(Te *testing.T) {
	fmt.Println("Score histogram test!")
	_, records, err := dock.ReadVinaPoses("../test/poses.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	err = ScoreHistogram(dock.Scores(records), 5, "Test scores", "../test/score_hist")
	if err != nil {
		Te.Error(err)
	}
}

func TestContactBars(Te *testing.T) {
	fmt.Println("Contact bars test!")
	prot, err := dock.PDBFileRead("../test/receptor.pdb", true)
	if err != nil {
		Te.Fatal(err)
	}
	poses, _, err := dock.ReadVinaPoses("../test/poses.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	rep, err := contact.Classify(prot.Coord(0), prot, poses.Coord(0), poses)
	if err != nil {
		Te.Fatal(err)
	}
	err = ContactBars(rep, "Test contacts", "../test/contact_bars")
	if err != nil {
		Te.Error(err)
	}
}

func TestRMSDHeatMap(Te *testing.T) {
	fmt.Println("RMSD heatmap test!")
	poses, _, err := dock.ReadVinaPoses("../test/poses.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	m, err := cluster.RMSDMatrix(poses.Coords)
	if err != nil {
		Te.Fatal(err)
	}
	err = RMSDHeatMap(m, "Test RMSD matrix", "../test/rmsd_heat")
	if err != nil {
		Te.Error(err)
	}
	err = RMSDHeatMap(nil, "Nil", "../test/should_not_exist")
	if err == nil {
		Te.Error("Plotting a nil matrix didn't fail")
	}
}
