/*
 * dock.go, part of godock
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

package dock

import (
	"fmt"

	v3 "github.com/rmera/godock/v3"
)

//Atom contains the information to represent an atom which is not expected to change
//between poses or frames. Note that the coordinates are not included here, they are
//kept in separate v3.Matrix objects, one row per atom.
type Atom struct {
	Name      string //PDB name of the atom
	ID        int    //The PDB index of the atom
	MolName   string //The PDB name of the residue or molecule owning the atom
	MolID     int    //PDB index of the residue or molecule owning the atom
	Chain     string //One-letter PDB name of the chain owning the atom
	Mass      float64
	Occupancy float64 //The occupancy of the atom in the PDB file
	Vdw       float64 //The van der Waals radius of the atom
	Charge    float64 //The partial charge of the atom, when the input carries one
	Symbol    string  //The element symbol
	Het       bool    //true if the atom is from a HETATM record
}

//Copy returns a copy of the Atom.
func (A *Atom) Copy() *Atom {
	Newat := new(Atom)
	Newat.Name = A.Name
	Newat.ID = A.ID
	Newat.MolName = A.MolName
	Newat.MolID = A.MolID
	Newat.Chain = A.Chain
	Newat.Mass = A.Mass
	Newat.Occupancy = A.Occupancy
	Newat.Vdw = A.Vdw
	Newat.Charge = A.Charge
	Newat.Symbol = A.Symbol
	Newat.Het = A.Het
	return Newat
}

/*****Topology type***/

//Topology contains information about a molecule which is not expected to change
//between poses or frames (i.e. everything except for coordinates).
type Topology struct {
	Atoms  []*Atom
	charge int
}

//NewTopology returns a topology with the given total charge and, optionally, the
//atoms in ats. If ats is not given, the atom slice is left empty, to be filled
//later (e.g. with SomeAtoms).
func NewTopology(charge int, ats ...[]*Atom) *Topology {
	top := new(Topology)
	if len(ats) > 0 && ats[0] != nil {
		top.Atoms = ats[0]
	} else {
		top.Atoms = make([]*Atom, 0, 10)
	}
	top.charge = charge
	return top
}

//Atom returns the Atom corresponding to the index i of the Atom slice in the
//Topology. Panics if out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic(fmt.Sprintf("goDock/Topology.Atom: Requested atom (%d) out of range (%d atoms)", i, T.Len()))
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//Charge returns the total charge of the topology.
func (T *Topology) Charge() int {
	return T.charge
}

//SetCharge sets the total charge of the topology to i.
func (T *Topology) SetCharge(i int) {
	T.charge = i
}

//SomeAtoms fills the receiver with the atoms of A with the indexes in atomlist,
//in the order given by atomlist. The atoms are not copied, both topologies share
//them. Returns an error if an index is out of range.
func (T *Topology) SomeAtoms(A Atomer, atomlist []int) error {
	lenatoms := A.Len()
	for k, j := range atomlist {
		if j > lenatoms-1 || j < 0 {
			return DError{fmt.Sprintf("%s: requested atom number %d, value %d", ErrAtomOutOfRange, k, j), []string{"SomeAtoms"}}
		}
		T.Atoms = append(T.Atoms, A.Atom(j))
	}
	return nil
}

//CopyAtoms returns a Topology with copies of the atoms of A, so the new topology
//does not share data with the original.
func (T *Topology) CopyAtoms(A Atomer) {
	T.Atoms = make([]*Atom, 0, A.Len())
	for i := 0; i < A.Len(); i++ {
		T.Atoms = append(T.Atoms, A.Atom(i).Copy())
	}
}

//Masses returns a slice with the masses of all atoms in the topology, and an
//error if any of them is not set.
func (T *Topology) Masses() ([]float64, error) {
	mass := make([]float64, T.Len())
	for i := 0; i < T.Len(); i++ {
		thisatom := T.Atom(i)
		if thisatom.Mass == 0 {
			return nil, DError{fmt.Sprintf("%s: atom %d", ErrNoMass, i), []string{"Masses"}}
		}
		mass[i] = thisatom.Mass
	}
	return mass, nil
}

/**Type Molecule**/

//Molecule contains all the info for a molecule in possibly several states: a
//Topology and one set of coordinates per state. For a docked ligand, each
//frame of coordinates is one pose, all sharing the same atoms in the same
//order.
type Molecule struct {
	*Topology
	Coords []*v3.Matrix
}

//NewMolecule makes a molecule with ats atoms and the frames of coordinates in
//coords. It returns an error if a frame doesn't match the number of atoms.
func NewMolecule(coords []*v3.Matrix, ats *Topology) (*Molecule, error) {
	if ats == nil {
		return nil, DError{fmt.Sprintf("%s: nil topology", ErrNilData), []string{"NewMolecule"}}
	}
	if coords == nil {
		return nil, DError{fmt.Sprintf("%s: nil coordinates", ErrNilData), []string{"NewMolecule"}}
	}
	mol := new(Molecule)
	mol.Topology = ats
	mol.Coords = coords
	if err := mol.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	return mol, nil
}

//NFrames returns the number of coordinate frames (for a ligand, poses) in the molecule.
func (M *Molecule) NFrames() int {
	return len(M.Coords)
}

//Coord returns the coordinates of the frame-th frame. Panics if the frame is
//out of range, as that is a caller bug.
func (M *Molecule) Coord(frame int) *v3.Matrix {
	if frame >= M.NFrames() || frame < 0 {
		panic(fmt.Sprintf("goDock/Molecule.Coord: Frame requested (%d) out of range (%d frames)", frame, M.NFrames()))
	}
	return M.Coords[frame]
}

//Corrupted checks that every frame of the molecule has as many coordinate
//vectors as the topology has atoms.
func (M *Molecule) Corrupted() error {
	for i, frame := range M.Coords {
		if frame == nil {
			return DError{fmt.Sprintf("%s: frame %d is nil", ErrCorrupted, i), []string{"Corrupted"}}
		}
		if M.Len() != frame.NVecs() {
			return DError{fmt.Sprintf("%s: frame %d has %d vectors for %d atoms", ErrCorrupted, i, frame.NVecs(), M.Len()), []string{"Corrupted"}}
		}
	}
	return nil
}

//Copy returns a deep copy of the molecule.
func (M *Molecule) Copy() *Molecule {
	top := NewTopology(M.Charge())
	top.CopyAtoms(M.Topology)
	coords := make([]*v3.Matrix, 0, M.NFrames())
	for _, frame := range M.Coords {
		newframe := v3.Zeros(frame.NVecs())
		newframe.Copy(frame)
		coords = append(coords, newframe)
	}
	mol, _ := NewMolecule(coords, top) //the molecule was already checked on creation
	return mol
}
