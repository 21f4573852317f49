/*
 * pdb.go, part of godock
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/godock/v3"
)

//symbolFromName attempts to guess the element symbol from the PDB name of an
//atom. It only knows the common "bio-elements", which is normally enough for
//the structures this library deals with.
func symbolFromName(name string) (string, error) {
	symbol := ""
	if len(name) == 4 || name[0] == 'H' { //I thiiink only Hs can have 4-char names in amber.
		symbol = "H"
	} else if name[0] == 'C' {
		if name == "CU" {
			symbol = "Cu"
		} else if name == "CO" {
			symbol = "Co"
		} else if name == "CL" {
			symbol = "Cl"
		} else {
			symbol = "C" //Ca is not considered here
		}
	} else if name[0] == 'N' {
		if name == "NA" {
			symbol = "Na"
		} else {
			symbol = "N"
		}
	} else if name[0] == 'O' {
		symbol = "O"
	} else if name[0] == 'P' {
		symbol = "P"
	} else if name[0] == 'S' {
		if name == "SE" {
			symbol = "Se"
		} else {
			symbol = "S"
		}
	} else if len(name) >= 2 && name[0:2] == "ZN" {
		symbol = "Zn"
	} else if name[0] == 'F' {
		if name == "FE" {
			symbol = "Fe"
		} else {
			symbol = "F"
		}
	}
	if symbol == "" {
		return symbol, fmt.Errorf("Couldn't guess symbol from PDB name %s", name)
	}
	return symbol, nil
}

//readPDBLine parses a valid ATOM or HETATM line of a PDB file, and returns an
//Atom object with the info, except for the coordinates and b-factor, which are
//returned separately, as a slice of 3 float64 and a float64, respectively.
func readPDBLine(line string, readAdditional bool) (*Atom, []float64, float64, error) {
	err := make([]error, 7) //accumulate errors to check at the end of the read line.
	coords := make([]float64, 3)
	atom := new(Atom)
	if len(line) < 66 {
		return nil, nil, 0, fmt.Errorf("Line too short: %s", line)
	}
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, err[0] = strconv.Atoi(strings.TrimSpace(line[6:12]))
	atom.Name = strings.TrimSpace(line[12:16])
	//PDB says that pos. 17 is for other thing but I see that is
	//used for residue name in many cases.
	atom.MolName = strings.TrimSpace(line[17:21])
	atom.Chain = strings.TrimSpace(line[21:22])
	atom.MolID, err[1] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	//Here we shouldn't need TrimSpace, but I keep it just in case someone
	//doesn't use all the fields when writing a PDB.
	coords[0], err[2] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[3] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[4] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	atom.Occupancy, err[5] = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	var bfactor float64
	bfactor, err[6] = strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	//we try to read the additional fields only if indicated, and if they are
	//there. In this part we don't catch errors: if something is missing we
	//just omit it.
	if readAdditional && len(line) >= 80 {
		atom.Symbol = strings.TrimSpace(line[76:78])
		q := strings.TrimSpace(line[78:80])
		if q != "" {
			mag := 1.0
			if digit, e := strconv.Atoi(q[0:1]); e == nil {
				mag = float64(digit)
			}
			if strings.HasSuffix(q, "-") {
				mag = -1.0 * mag
			}
			atom.Charge = mag
		}
	}
	//This part tries to guess the symbol from the atom name, if it has not
	//been read. No error checking here, symbol just stays empty if the
	//guess fails.
	if len(atom.Symbol) == 0 {
		atom.Symbol, _ = symbolFromName(atom.Name)
	}
	for i := range err {
		if err[i] != nil {
			return nil, nil, 0, err[i]
		}
	}
	if atom.Symbol != "" {
		atom.Mass = symbolMass[atom.Symbol] //Not error checking
		atom.Vdw = VdwRad(atom.Symbol)
	}
	return atom, coords, bfactor, nil
}

//readPDBCoordsLine parses a PDB line when only the coordinates are to be read
//(i.e. for every frame of a multi-MODEL file after the first).
func readPDBCoordsLine(line string) ([]float64, error) {
	coords := make([]float64, 3)
	err := make([]error, 3)
	if len(line) < 54 {
		return nil, fmt.Errorf("Line too short: %s", line)
	}
	coords[0], err[0] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[1] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[2] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	for i := range err {
		if err[i] != nil {
			return nil, err[i]
		}
	}
	return coords, nil
}

//PDBFileRead reads a PDB file from the file pdbname and returns a Molecule.
//If the file contains several MODELs, each becomes a frame of the Molecule,
//all sharing the atoms read from the first MODEL (for a docked ligand, one
//frame per pose). If readAdditional is given and true, the symbol and charge
//columns (77 onwards) are also read.
func PDBFileRead(pdbname string, readAdditional ...bool) (*Molecule, error) {
	ra := false
	if len(readAdditional) > 0 {
		ra = readAdditional[0]
	}
	pdbfile, err := os.Open(pdbname)
	if err != nil {
		return nil, err
	}
	defer pdbfile.Close()
	mol, err := PDBRead(pdbfile, ra)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead: "+pdbname)
	}
	return mol, nil
}

//PDBRead reads a PDB-formatted stream, returning a Molecule. Each MODEL in
//the stream becomes a frame of the Molecule.
func PDBRead(pdb io.Reader, readAdditional bool) (*Molecule, error) {
	bufiopdb := bufio.NewReader(pdb)
	mol, err := pdbBufIORead(bufiopdb, readAdditional)
	return mol, err
}

func pdbBufIORead(pdb *bufio.Reader, readAdditional bool) (*Molecule, error) {
	molecule := make([]*Atom, 0, 100)
	coords := make([][]float64, 1, 1)
	coords[0] = make([]float64, 0, 300)
	firstmodel := true //are we reading the first model? if not we only save coordinates
	contlines := 0     //count the lines read to better report errors
	for {
		line, err := pdb.ReadString('\n')
		contlines++
		if err != nil && len(line) < 4 {
			break //no more lines to read
		}
		if len(line) < 4 {
			continue
		}
		if strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM") {
			if !firstmodel {
				c, err2 := readPDBCoordsLine(line)
				if err2 != nil {
					return nil, DError{fmt.Sprintf("%s: line %d: %s", ErrPDBLine, contlines, err2.Error()), []string{"pdbBufIORead"}}
				}
				coords[len(coords)-1] = append(coords[len(coords)-1], c...)
			} else {
				atomtmp, c, _, err2 := readPDBLine(line, readAdditional)
				if err2 != nil {
					return nil, DError{fmt.Sprintf("%s: line %d: %s", ErrPDBLine, contlines, err2.Error()), []string{"pdbBufIORead"}}
				}
				//atom data other than coords is the same in all models so just read for the first.
				molecule = append(molecule, atomtmp)
				coords[len(coords)-1] = append(coords[len(coords)-1], c...)
			}
		} else if strings.HasPrefix(line, "MODEL") {
			modelnumber := 1 //apparently in PDBs the count starts from 1
			modelnumber, _ = strconv.Atoi(strings.TrimSpace(line[6:]))
			if modelnumber > 1 {
				firstmodel = false
				coords = append(coords, make([]float64, 0, len(coords[0]))) //new bunch of coords for a new frame
			}
		} else if strings.HasPrefix(line, "END") && !strings.HasPrefix(line, "ENDMDL") {
			break
		}
		if err != nil {
			break //the last line of the file lacked a newline, but was still read
		}
	}
	if len(molecule) == 0 {
		return nil, DError{string(ErrNoAtoms), []string{"pdbBufIORead"}}
	}
	frames := make([]*v3.Matrix, 0, len(coords))
	for i := range coords {
		frame, err := v3.NewMatrix(coords[i])
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("pdbBufIORead: frame %d", i))
		}
		frames = append(frames, frame)
	}
	top := NewTopology(0, molecule)
	mol, err := NewMolecule(frames, top)
	if err != nil {
		return nil, errDecorate(err, "pdbBufIORead")
	}
	return mol, nil
}

//End PDB read family

//PDBFileWrite writes the frame frame of the molecule mol to the file pdbname,
//which will be created (or overwritten). bfact are the b-factors to write, one
//per atom; if nil, zeroes are written. Pocket exports use the b-factor column
//for scores, as many pocket-detection programs do.
func PDBFileWrite(pdbname string, coords *v3.Matrix, mol Atomer, bfact []float64) error {
	out, err := os.Create(pdbname)
	if err != nil {
		return DError{fmt.Sprintf("%s: %s", err.Error(), pdbname), []string{"PDBFileWrite"}}
	}
	defer out.Close()
	var bf [][]float64
	if bfact != nil {
		bf = [][]float64{bfact}
	}
	err = pdbWrite(out, []*v3.Matrix{coords}, mol, bf)
	if err != nil {
		return errDecorate(err, "PDBFileWrite: "+pdbname)
	}
	return nil
}

//MultiPDBFileWrite writes a multi-MODEL PDB file with all the given frames for
//the molecule mol to the file pdbname. bfacts, if not nil, must contain one
//slice of b-factors per frame.
func MultiPDBFileWrite(pdbname string, coords []*v3.Matrix, mol Atomer, bfacts [][]float64) error {
	out, err := os.Create(pdbname)
	if err != nil {
		return DError{fmt.Sprintf("%s: %s", err.Error(), pdbname), []string{"MultiPDBFileWrite"}}
	}
	defer out.Close()
	err = pdbWrite(out, coords, mol, bfacts)
	if err != nil {
		return errDecorate(err, "MultiPDBFileWrite: "+pdbname)
	}
	return nil
}

func pdbWrite(out io.Writer, coords []*v3.Matrix, mol Atomer, bfacts [][]float64) error {
	if len(coords) == 0 || mol.Len() == 0 {
		return DError{string(ErrNoAtoms), []string{"pdbWrite"}}
	}
	for j, frame := range coords {
		if frame.NVecs() != mol.Len() {
			return DError{fmt.Sprintf("%s: frame %d has %d vectors for %d atoms", ErrCorrupted, j, frame.NVecs(), mol.Len()), []string{"pdbWrite"}}
		}
		if bfacts != nil && len(bfacts[j]) != mol.Len() {
			return DError{fmt.Sprintf("%s: %d b-factors for %d atoms", ErrCorrupted, len(bfacts[j]), mol.Len()), []string{"pdbWrite"}}
		}
	}
	fmt.Fprint(out, "REMARK     WRITTEN WITH GODOCK :-)\n")
	manyframes := len(coords) > 1
	c := make([]float64, 3)
	for j, frame := range coords {
		if manyframes {
			fmt.Fprintf(out, "MODEL %8d\n", j+1)
		}
		chainprev := mol.Atom(0).Chain //this is to know when the chain changes.
		for i := 0; i < mol.Len(); i++ {
			at := mol.Atom(i)
			if at.Chain != chainprev {
				fmt.Fprintln(out, "TER")
				chainprev = at.Chain
			}
			first := "ATOM"
			if at.Het {
				first = "HETATM"
			}
			bfac := 0.0
			if bfacts != nil {
				bfac = bfacts[j][i]
			}
			frame.Row(c, i)
			var err error
			if len(at.Name) < 4 {
				_, err = fmt.Fprintf(out, "%-6s%5d  %-3s %-4s%1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n", first, at.ID, at.Name, at.MolName, at.Chain, at.MolID, c[0], c[1], c[2], at.Occupancy, bfac, at.Symbol)
			} else if len(at.Name) == 4 {
				_, err = fmt.Fprintf(out, "%-6s%5d %4s %-4s%1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n", first, at.ID, at.Name, at.MolName, at.Chain, at.MolID, c[0], c[1], c[2], at.Occupancy, bfac, at.Symbol)
			} else {
				err = fmt.Errorf("Can't print PDB line with atom name %s", at.Name)
			}
			if err != nil {
				return DError{err.Error(), []string{"pdbWrite"}}
			}
		}
		if manyframes {
			fmt.Fprint(out, "ENDMDL\n")
		}
	}
	fmt.Fprint(out, "END\n")
	return nil
}
