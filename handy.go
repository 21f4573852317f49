/*
 * handy.go, part of godock
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

//handy.go has functions that are not really needed, but are nice to have around.

package dock

import (
	"fmt"

	v3 "github.com/rmera/godock/v3"
)

//SplitHet separates the atom indexes of mol into those belonging to ATOM
//records (the polymer: protein or nucleic acid) and those from HETATM records
//(ligands, waters, ions). Useful to cut a receptor-plus-ligand structure
//before analysis.
func SplitHet(mol Atomer) (polymer, het []int) {
	polymer = make([]int, 0, mol.Len())
	het = make([]int, 0, 10)
	for i := 0; i < mol.Len(); i++ {
		if mol.Atom(i).Het {
			het = append(het, i)
		} else {
			polymer = append(polymer, i)
		}
	}
	return polymer, het
}

//Molecules2Atoms gets the indexes of all atoms in mol that belong to one of
//the residues in residues, and to one of the chains in chains. If chains is
//empty, atoms from any chain are returned.
func Molecules2Atoms(mol Atomer, residues []int, chains []string) []int {
	atlist := make([]int, 0, len(residues)*3)
	for key := 0; key < mol.Len(); key++ {
		at := mol.Atom(key)
		if isInInt(residues, at.MolID) && (len(chains) == 0 || isInString(chains, at.Chain)) {
			atlist = append(atlist, key)
		}
	}
	return atlist
}

//isInInt returns true if test is in container, false otherwise.
func isInInt(container []int, test int) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

//same as the previous, but with strings.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

//CutLig takes a Molecule whose topology mixes a receptor and HETATM ligand
//atoms (plus possibly waters and ions) and returns two new Molecules, the
//receptor and the het part. The molname of the ligand can be given to exclude
//other het atoms from the second return; if not given, every het atom that is
//not a water goes there.
func CutLig(mol *Molecule, ligname ...string) (*Molecule, *Molecule, error) {
	if mol == nil || mol.Len() == 0 {
		return nil, nil, DError{string(ErrNoAtoms), []string{"CutLig"}}
	}
	polymer, het := SplitHet(mol)
	nhet := make([]int, 0, len(het))
	for _, i := range het {
		n := mol.Atom(i).MolName
		if len(ligname) > 0 {
			if n == ligname[0] {
				nhet = append(nhet, i)
			}
		} else if n != "HOH" && n != "WAT" {
			nhet = append(nhet, i)
		}
	}
	het = nhet
	rec, err := CutMol(mol, polymer)
	if err != nil {
		return nil, nil, errDecorate(err, "CutLig")
	}
	lig, err := CutMol(mol, het)
	if err != nil {
		return nil, nil, errDecorate(err, "CutLig")
	}
	return rec, lig, nil
}

//CutMol builds a new Molecule with the atoms of mol at the given indexes and
//the corresponding vectors of every frame. The atoms are shared with the
//original, the coordinates are copied.
func CutMol(mol *Molecule, indexes []int) (*Molecule, error) {
	if len(indexes) == 0 {
		return nil, DError{fmt.Sprintf("%s: empty index list", ErrNoAtoms), []string{"CutMol"}}
	}
	top := NewTopology(0)
	err := top.SomeAtoms(mol, indexes)
	if err != nil {
		return nil, errDecorate(err, "CutMol")
	}
	coords := make([]*v3.Matrix, 0, mol.NFrames())
	for _, frame := range mol.Coords {
		cut := v3.Zeros(len(indexes))
		cut.SomeVecs(frame, indexes)
		coords = append(coords, cut)
	}
	return NewMolecule(coords, top)
}
