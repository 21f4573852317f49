/*
 * contact_test.go, part of godock
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

package contact

import (
	"fmt"
	"math"
	"testing"

	dock "github.com/rmera/godock"
	v3 "github.com/rmera/godock/v3"
)

func oneAtom(name, molname, symbol string, molid int, x, y, z float64) (*dock.Topology, *v3.Matrix) {
	at := &dock.Atom{Name: name, ID: 1, MolName: molname, MolID: molid, Chain: "A", Symbol: symbol}
	top := dock.NewTopology(0, []*dock.Atom{at})
	coords, _ := v3.NewMatrix([]float64{x, y, z})
	return top, coords
}

//A ligand O exactly 3.0 A from a protein N: hydrogen bond, and the residue
//is part of the site.
func TestHBondAtThree(Te *testing.T) {
	fmt.Println("Hydrogen bond test!")
	pmol, protein := oneAtom("N", "ALA", "N", 1, 0, 0, 0)
	lmol, ligand := oneAtom("O1", "LIG", "O", 1, 3, 0, 0)
	rep, err := Classify(protein, pmol, ligand, lmol)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(rep)
	if len(rep.HBonds) != 1 {
		Te.Fatalf("Got %d hydrogen bonds, expected 1", len(rep.HBonds))
	}
	if math.Abs(rep.HBonds[0].Distance-3.0) > 1e-12 {
		Te.Errorf("Got distance %6.4f, expected 3.0", rep.HBonds[0].Distance)
	}
	if len(rep.Site) != 1 || rep.Site[0].MolName != "ALA" || rep.Site[0].MolID != 1 {
		Te.Errorf("Site residues: %v, expected just ALA 1", rep.Site)
	}
	//and with a tighter cutoff, no hydrogen bond, but still in the site.
	o := DefaultOptions()
	o.HBond(2.0)
	rep, err = Classify(protein, pmol, ligand, lmol, o)
	if err != nil {
		Te.Fatal(err)
	}
	if len(rep.HBonds) != 0 {
		Te.Error("A 3.0 A pair qualified against a 2.0 A cutoff")
	}
	if len(rep.Site) != 1 {
		Te.Error("The residue left the site when the hbond cutoff changed")
	}
}

//One pair can be several things at once. An ASP carboxylate O against a
//ligand N is both a hydrogen bond and an ionic contact, and the two lists
//share the same Interaction.
func TestMultiCategory(Te *testing.T) {
	fmt.Println("Multi-category test!")
	pmol, protein := oneAtom("OD1", "ASP", "O", 1, 0, 0, 0)
	lmol, ligand := oneAtom("N1", "LIG", "N", 1, 2.8, 0, 0)
	rep, err := Classify(protein, pmol, ligand, lmol)
	if err != nil {
		Te.Fatal(err)
	}
	if len(rep.HBonds) != 1 || len(rep.Ionic) != 1 {
		Te.Fatalf("Expected 1 hbond and 1 ionic, got %d and %d", len(rep.HBonds), len(rep.Ionic))
	}
	if rep.HBonds[0] != rep.Ionic[0] {
		Te.Error("The hbond and ionic lists don't share the pair's Interaction")
	}
}

//Hydrophobic and stacking rules. A PHE carbon against a ligand carbon at
//different distances.
func TestCarbonRules(Te *testing.T) {
	fmt.Println("Carbon rules test!")
	pmol, protein := oneAtom("CG", "PHE", "C", 2, 0, 0, 0)
	lmol, ligand := oneAtom("C1", "LIG", "C", 1, 3.9, 0, 0)
	rep, err := Classify(protein, pmol, ligand, lmol)
	if err != nil {
		Te.Fatal(err)
	}
	if len(rep.Hydrophobic) != 1 || len(rep.Stacking) != 1 {
		Te.Errorf("At 3.9 A expected hydrophobic and stacking, got %d and %d", len(rep.Hydrophobic), len(rep.Stacking))
	}
	//at 5.0 A only the stacking cutoff reaches, and the residue is not even
	//in the site (the site cutoff is 4.5 A).
	lmol, ligand = oneAtom("C1", "LIG", "C", 1, 5.0, 0, 0)
	rep, err = Classify(protein, pmol, ligand, lmol)
	if err != nil {
		Te.Fatal(err)
	}
	if len(rep.Hydrophobic) != 0 || len(rep.Stacking) != 1 {
		Te.Errorf("At 5.0 A expected only stacking, got %d hydrophobic and %d stacking", len(rep.Hydrophobic), len(rep.Stacking))
	}
	if len(rep.Site) != 0 {
		Te.Error("A residue at 5.0 A entered the 4.5 A site")
	}
	//a leucine carbon at the same distance: not aromatic, so nothing.
	pmol, protein = oneAtom("CD1", "LEU", "C", 3, 0, 0, 0)
	rep, err = Classify(protein, pmol, ligand, lmol)
	if err != nil {
		Te.Fatal(err)
	}
	if len(rep.Stacking) != 0 {
		Te.Error("A LEU carbon qualified for stacking")
	}
}

//The site list is deduplicated and sorted by chain, number and name.
func TestSiteOrder(Te *testing.T) {
	fmt.Println("Site ordering test!")
	atoms := []*dock.Atom{
		{Name: "CA", ID: 1, MolName: "VAL", MolID: 2, Chain: "B", Symbol: "C"},
		{Name: "CA", ID: 2, MolName: "GLY", MolID: 5, Chain: "A", Symbol: "C"},
		{Name: "CB", ID: 3, MolName: "GLY", MolID: 5, Chain: "A", Symbol: "C"},
		{Name: "CA", ID: 4, MolName: "ALA", MolID: 1, Chain: "A", Symbol: "C"},
	}
	pmol := dock.NewTopology(0, atoms)
	protein, _ := v3.NewMatrix([]float64{0, 0, 0, 1, 0, 0, 1.5, 0, 0, 2, 0, 0})
	lmol, ligand := oneAtom("O1", "LIG", "O", 1, 1, 1, 0)
	rep, err := Classify(protein, pmol, ligand, lmol)
	if err != nil {
		Te.Fatal(err)
	}
	if len(rep.Site) != 3 {
		Te.Fatalf("Got %d site residues, expected 3: %v", len(rep.Site), rep.Site)
	}
	expected := []Residue{{"A", 1, "ALA"}, {"A", 5, "GLY"}, {"B", 2, "VAL"}}
	for i, r := range expected {
		if rep.Site[i] != r {
			Te.Errorf("Site residue %d is %v, expected %v", i, rep.Site[i], r)
		}
	}
}

//The chunked concurrent run must give exactly the serial report.
func TestClassifyConcurrent(Te *testing.T) {
	fmt.Println("Concurrent classification test!")
	prot, err := dock.PDBFileRead("../test/receptor.pdb", true)
	if err != nil {
		Te.Fatal(err)
	}
	poses, _, err := dock.ReadVinaPoses("../test/poses.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	serial := DefaultOptions()
	serial.Cpus(1)
	parallel := DefaultOptions()
	parallel.Cpus(4)
	rep1, err := Classify(prot.Coord(0), prot, poses.Coord(0), poses, serial)
	if err != nil {
		Te.Fatal(err)
	}
	rep2, err := Classify(prot.Coord(0), prot, poses.Coord(0), poses, parallel)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("serial:  ", rep1)
	fmt.Println("parallel:", rep2)
	for n, pair := range map[string][2][]*Interaction{
		"hbond":       {rep1.HBonds, rep2.HBonds},
		"hydrophobic": {rep1.Hydrophobic, rep2.Hydrophobic},
		"ionic":       {rep1.Ionic, rep2.Ionic},
		"stacking":    {rep1.Stacking, rep2.Stacking},
	} {
		if len(pair[0]) != len(pair[1]) {
			Te.Fatalf("%s lists differ in size: %d vs %d", n, len(pair[0]), len(pair[1]))
		}
		for i := range pair[0] {
			a, b := pair[0][i], pair[1][i]
			if a.ProteinAtom.ID != b.ProteinAtom.ID || a.LigandAtom.ID != b.LigandAtom.ID || a.Distance != b.Distance {
				Te.Errorf("%s interaction %d differs between serial and concurrent runs", n, i)
			}
		}
	}
	if len(rep1.Site) != len(rep2.Site) {
		Te.Fatalf("Site lists differ in size: %d vs %d", len(rep1.Site), len(rep2.Site))
	}
	for i := range rep1.Site {
		if rep1.Site[i] != rep2.Site[i] {
			Te.Errorf("Site residue %d differs between serial and concurrent runs", i)
		}
	}
}

//The docked pose in the test files makes a salt bridge to the ASP, hydrogen
//bonds, and sits on the PHE ring.
func TestPoseFixture(Te *testing.T) {
	fmt.Println("Pose fixture test!")
	prot, err := dock.PDBFileRead("../test/receptor.pdb", true)
	if err != nil {
		Te.Fatal(err)
	}
	poses, records, err := dock.ReadVinaPoses("../test/poses.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	if len(records) != 3 || poses.NFrames() != 3 {
		Te.Fatalf("Expected 3 poses with records, got %d frames, %d records", poses.NFrames(), len(records))
	}
	rep, err := Classify(prot.Coord(0), prot, poses.Coord(0), poses)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(rep)
	for _, i := range rep.HBonds {
		fmt.Println("hbond:", i)
	}
	if len(rep.HBonds) == 0 || len(rep.Ionic) == 0 || len(rep.Stacking) == 0 || len(rep.Hydrophobic) == 0 {
		Te.Error("The docked pose should show all four interaction types")
	}
	for _, i := range rep.Ionic {
		if i.ProteinAtom.MolName != "ASP" {
			Te.Errorf("Ionic contact to a non-charged residue: %s", i)
		}
	}
	for _, i := range rep.Stacking {
		if i.ProteinAtom.MolName != "PHE" {
			Te.Errorf("Stacking contact to a non-aromatic residue: %s", i)
		}
	}
	saw := map[string]bool{}
	for _, r := range rep.Site {
		saw[r.MolName] = true
	}
	for _, resname := range []string{"ASP", "PHE", "SER"} {
		if !saw[resname] {
			Te.Errorf("%s missing from the site residues: %v", resname, rep.Site)
		}
	}
	if saw["HOH"] {
		Te.Error("The far-away water entered the site")
	}
	//the third pose is docked into empty space.
	rep, err = Classify(prot.Coord(0), prot, poses.Coord(2), poses)
	if err != nil {
		Te.Fatal(err)
	}
	if rep.Total() != 0 || len(rep.Site) != 0 {
		Te.Errorf("The displaced pose found contacts: %s", rep)
	}
}

func TestClassifyBadInput(Te *testing.T) {
	fmt.Println("Bad input test!")
	pmol, protein := oneAtom("N", "ALA", "N", 1, 0, 0, 0)
	_, err := Classify(protein, pmol, nil, nil)
	if err == nil {
		Te.Error("A nil ligand didn't fail")
	}
	lmol, _ := oneAtom("O1", "LIG", "O", 1, 3, 0, 0)
	short := v3.Zeros(2)
	_, err = Classify(protein, pmol, short, lmol)
	if err == nil {
		Te.Error("Mismatched ligand coordinates and topology didn't fail")
	}
}
