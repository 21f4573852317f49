/*
 * atomicdata.go, part of godock
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

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Cr": 51.996,
	"Si": 28.08,
	"Be": 9.012,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
}

//A map for assigning van der Waals radii to elements
//Values from 10.1021/j100785a001 and 10.1021/jp8111556
//metal radii from 10.1023/A:1011625728803
//Note that just common "bio-elements" are present
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"C":  1.70, //the sp3 radius
	"O":  1.52,
	"N":  1.55,
	"P":  1.80,
	"S":  1.80,
	"Se": 1.90,
	"K":  2.75,
	"Ca": 2.31,
	"Mg": 1.73,
	"Cl": 1.75,
	"Na": 2.27,
	"Cu": 2.00,
	"Zn": 2.02,
	"Co": 1.95,
	"Fe": 1.96,
	"Mn": 1.96,
	"Cr": 1.97,
	"Si": 2.10,
	"Be": 1.53,
	"F":  1.47,
	"Br": 1.83,
	"I":  1.98,
}

//DefVdw is the radius assigned to elements absent from the van der Waals
//table. The carbon radius is used, as C is by far the most common element
//in the structures this library deals with.
const DefVdw float64 = 1.70

//VdwRad returns the van der Waals radius for the element with the given
//symbol, or DefVdw if the element is not in the table.
func VdwRad(symbol string) float64 {
	if rad, ok := symbolVdwrad[symbol]; ok {
		return rad
	}
	return DefVdw
}

//VdwRadKnown returns the van der Waals radius for the element with the given
//symbol, and whether the element was actually in the table. Callers that want
//their own fallback radius use this instead of VdwRad.
func VdwRadKnown(symbol string) (float64, bool) {
	rad, ok := symbolVdwrad[symbol]
	return rad, ok
}

//FillVdw sets the Vdw field of every atom in mol from the van der Waals
//table, using DefVdw for elements not in the table.
func FillVdw(mol Atomer) {
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		at.Vdw = VdwRad(at.Symbol)
	}
}

//FillMasses sets the Mass field of every atom in mol from the mass table.
//Atoms with elements not in the table are left untouched, so the caller can
//decide whether a zero mass is a problem (Masses will complain about them).
func FillMasses(mol Atomer) {
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if mass, ok := symbolMass[at.Symbol]; ok {
			at.Mass = mass
		}
	}
}

//Charged and aromatic protein residues, used by the contact classification
//heuristics. HIS appears in both sets: it is protonatable and its side chain
//is an imidazole ring.
var chargedResidue = map[string]bool{
	"ASP": true,
	"GLU": true,
	"LYS": true,
	"ARG": true,
	"HIS": true,
}

var aromaticResidue = map[string]bool{
	"PHE": true,
	"TYR": true,
	"TRP": true,
	"HIS": true,
}

//ChargedResidue returns whether resname is one of the titratable/charged
//protein residues (ASP, GLU, LYS, ARG, HIS).
func ChargedResidue(resname string) bool {
	return chargedResidue[resname]
}

//AromaticResidue returns whether resname is one of the aromatic protein
//residues (PHE, TYR, TRP, HIS).
func AromaticResidue(resname string) bool {
	return aromaticResidue[resname]
}
