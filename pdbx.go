/*
 * pdbx.go, part of godock
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

//pdbx.go reads and writes PDBx/mmCIF files, the format the wwPDB now
//distributes by default. Only the _atom_site loop is read; everything else in
//the file is skipped. The auth_* fields are used, as they carry the author's
//numbering, which is what the PDB reader gives too.

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

var tl func(string) string = strings.ToLower

//the _atom_site fields this reader consumes. Headers not in this list still
//advance the column count, they just aren't looked at.
var atomSiteFields = []string{
	"_atom_site.group_pdb",
	"_atom_site.id",
	"_atom_site.type_symbol",
	"_atom_site.cartn_x",
	"_atom_site.cartn_y",
	"_atom_site.cartn_z",
	"_atom_site.occupancy",
	"_atom_site.pdbx_formal_charge",
	"_atom_site.auth_seq_id",
	"_atom_site.auth_comp_id",
	"_atom_site.auth_asym_id",
	"_atom_site.auth_atom_id",
	"_atom_site.pdbx_pdb_model_num",
}

//pdbxmap maps _atom_site field names to their column in the data lines.
//Fields not present in the file stay at -1.
type pdbxmap map[string]int

func newPdbxMap() pdbxmap {
	m := make(pdbxmap, len(atomSiteFields))
	for _, k := range atomSiteFields {
		m[k] = -1
	}
	return m
}

//add sets the column of the field s to i, if s is a field this reader knows.
//Unknown fields are ignored.
func (m pdbxmap) add(s string, i int) {
	s = strings.TrimSpace(s)
	if _, ok := m[s]; ok {
		m[s] = i
	}
}

//get returns the column for the given field, or -1 if the field was not in
//the file (or is not known to the reader).
func (m pdbxmap) get(s string) int {
	if i, ok := m[s]; ok {
		return i
	}
	return -1
}

//PDBxRead reads a PDBx/mmCIF-formatted stream, returning a Molecule. Each
//model in the _atom_site loop becomes a frame, as with multi-MODEL PDBs.
func PDBxRead(pdbx io.Reader) (*Molecule, error) {
	buf := bufio.NewReader(pdbx)
	mol, err := pdbxBufIORead(buf)
	if err != nil {
		return nil, errDecorate(err, "PDBxRead")
	}
	return mol, nil
}

//PDBxFileRead reads the PDBx/mmCIF file pdbxname and returns a Molecule.
func PDBxFileRead(pdbxname string) (*Molecule, error) {
	f, err := os.Open(pdbxname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mol, err := pdbxBufIORead(bufio.NewReader(f))
	if err != nil {
		return nil, errDecorate(err, "PDBxFileRead: "+pdbxname)
	}
	return mol, nil
}

//pdbxNextLoop advances the reader to the next "loop_" line.
func pdbxNextLoop(pdbx *bufio.Reader) (string, error) {
	for {
		line, err := pdbx.ReadString('\n')
		if err != nil {
			return line, err
		}
		if strings.HasPrefix(tl(line), "loop_") {
			return line, nil
		}
	}
}

//pdbxFillAtom builds an Atom from one data line of the _atom_site loop,
//using the column map m. Fields absent from the file are left at their zero
//values, except for the symbol, which is guessed from the name if needed.
func pdbxFillAtom(data []string, m pdbxmap) (*Atom, error) {
	at := new(Atom)
	str := func(field string) string {
		k := m.get(field)
		if k < 0 || k >= len(data) {
			return ""
		}
		return data[k]
	}
	at.Symbol = str("_atom_site.type_symbol")
	at.Name = str("_atom_site.auth_atom_id")
	if at.Symbol == "" || at.Symbol == "." || at.Symbol == "?" {
		at.Symbol, _ = symbolFromName(at.Name)
	}
	at.MolName = str("_atom_site.auth_comp_id")
	at.Chain = str("_atom_site.auth_asym_id")
	if s := str("_atom_site.group_pdb"); s != "" {
		at.Het = s != "ATOM"
	}
	var err error
	if s := str("_atom_site.id"); s != "" {
		at.ID, err = strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("Couldn't parse the atom ID from %s: %w", s, err)
		}
	}
	if s := str("_atom_site.auth_seq_id"); s != "" {
		at.MolID, err = strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("Couldn't parse the residue ID from %s: %w", s, err)
		}
	}
	if s := str("_atom_site.occupancy"); s != "" {
		at.Occupancy, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("Couldn't parse the occupancy from %s: %w", s, err)
		}
	}
	//mmCIF marks absent charges with "?" or ".", so parse failures just
	//leave the charge at zero.
	if s := str("_atom_site.pdbx_formal_charge"); s != "" {
		if q, e := strconv.ParseFloat(s, 64); e == nil {
			at.Charge = q
		}
	}
	if at.Symbol != "" {
		at.Mass = symbolMass[at.Symbol]
		at.Vdw = VdwRad(at.Symbol)
	}
	return at, nil
}

//pdbxFillCoords appends the cartesian coordinates in the data line to coord.
func pdbxFillCoords(data []string, coord []float64, m pdbxmap) ([]float64, error) {
	for _, v := range []string{"_atom_site.cartn_x", "_atom_site.cartn_y", "_atom_site.cartn_z"} {
		k := m.get(v)
		if k < 0 || k >= len(data) {
			return coord, fmt.Errorf("Field %s not present in data %v", v, data)
		}
		fl, err := strconv.ParseFloat(data[k], 64)
		if err != nil {
			return coord, fmt.Errorf("Couldn't parse %s from %s: %w", v, data[k], err)
		}
		coord = append(coord, fl)
	}
	return coord, nil
}

func pdbxBufIORead(pdbx *bufio.Reader) (*Molecule, error) {
	m := newPdbxMap()
	molecule := make([]*Atom, 0, 100)
	coords := make([][]float64, 1)
	coords[0] = make([]float64, 0, 300)
	currentmodel := 1
	reading := false
	field := 0
	hp := strings.HasPrefix
	for {
		line, err := pdbx.ReadString('\n')
		if err != nil && len(strings.TrimSpace(line)) == 0 {
			break
		}
		if hp(line, "#") || hp(line, ";") || strings.TrimSpace(line) == "" {
			if err != nil {
				break
			}
			continue
		}
		if !reading && hp(tl(line), "_atom_site") {
			reading = true
			field = 0
		}
		if !reading {
			//skip to the next loop_, whatever this section is
			if _, err2 := pdbxNextLoop(pdbx); err2 != nil {
				break
			}
			continue
		}
		if hp(line, "loop_") {
			reading = false
			continue
		}
		if hp(line, "_") {
			//a new section (or the anisotropic table) ends the atom loop
			if !hp(tl(line), "_atom_site") || hp(tl(line), "_atom_site_anisotrop") {
				reading = false
				continue
			}
			m.add(tl(line), field)
			field++
		} else {
			data := strings.Fields(line)
			if modkey := m.get("_atom_site.pdbx_pdb_model_num"); modkey >= 0 {
				if modkey >= len(data) {
					return nil, DError{fmt.Sprintf("%s: model column missing in line %s", ErrPDBxLine, line), []string{"pdbxBufIORead"}}
				}
				model, err2 := strconv.Atoi(data[modkey])
				if err2 != nil {
					return nil, DError{fmt.Sprintf("%s: Couldn't parse the model number from %s", ErrPDBxLine, data[modkey]), []string{"pdbxBufIORead"}}
				}
				if model > currentmodel {
					coords = append(coords, make([]float64, 0, len(coords[0])))
					currentmodel = model
				}
			}
			//atoms are only collected for the first model
			if currentmodel == 1 {
				at, err2 := pdbxFillAtom(data, m)
				if err2 != nil {
					return nil, DError{fmt.Sprintf("%s: atom %d: %s", ErrPDBxLine, len(molecule)+1, err2.Error()), []string{"pdbxBufIORead"}}
				}
				molecule = append(molecule, at)
			}
			c := len(coords) - 1
			coords[c], err = pdbxFillCoords(data, coords[c], m)
			if err != nil {
				return nil, DError{fmt.Sprintf("%s: frame %d: %s", ErrPDBxLine, currentmodel, err.Error()), []string{"pdbxBufIORead"}}
			}
		}
		if err != nil {
			break //the last line of the file lacked a newline, but was still read
		}
	}
	if len(molecule) == 0 {
		return nil, DError{string(ErrNoAtoms), []string{"pdbxBufIORead"}}
	}
	frames := make([]*v3.Matrix, 0, len(coords))
	for i := range coords {
		frame, err := v3.NewMatrix(coords[i])
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("pdbxBufIORead: frame %d", i))
		}
		frames = append(frames, frame)
	}
	mol, err := NewMolecule(frames, NewTopology(0, molecule))
	if err != nil {
		return nil, errDecorate(err, "pdbxBufIORead")
	}
	return mol, nil
}

//PDBxFileWrite writes the molecule mol with all the given frames to the
//PDBx/mmCIF file pdbxname. Every data row carries the full atom fields plus
//the model number, so the loop has a uniform column layout.
func PDBxFileWrite(pdbxname string, coords []*v3.Matrix, mol Atomer) error {
	out, err := os.Create(pdbxname)
	if err != nil {
		return DError{fmt.Sprintf("%s: %s", err.Error(), pdbxname), []string{"PDBxFileWrite"}}
	}
	defer out.Close()
	err = PDBxWrite(out, coords, mol, strings.TrimSuffix(pdbxname, ".cif"))
	if err != nil {
		return errDecorate(err, "PDBxFileWrite: "+pdbxname)
	}
	return nil
}

//PDBxWrite writes mol to out in PDBx/mmCIF format, one model per frame.
//name is used for the data_ block header.
func PDBxWrite(out io.Writer, coords []*v3.Matrix, mol Atomer, name string) error {
	if len(coords) == 0 || mol.Len() == 0 {
		return DError{string(ErrNoAtoms), []string{"PDBxWrite"}}
	}
	for j, frame := range coords {
		if frame.NVecs() != mol.Len() {
			return DError{fmt.Sprintf("%s: frame %d has %d vectors for %d atoms", ErrCorrupted, j, frame.NVecs(), mol.Len()), []string{"PDBxWrite"}}
		}
	}
	if name == "" {
		name = "godock"
	}
	fmt.Fprintf(out, "data_%s\n#\n", name)
	fmt.Fprint(out, "loop_\n")
	for _, field := range []string{"group_PDB", "id", "type_symbol", "auth_atom_id",
		"auth_comp_id", "auth_asym_id", "auth_seq_id", "occupancy",
		"pdbx_formal_charge", "pdbx_PDB_model_num", "Cartn_x", "Cartn_y", "Cartn_z"} {
		fmt.Fprintf(out, "_atom_site.%s\n", field)
	}
	c := make([]float64, 3)
	for j, frame := range coords {
		for i := 0; i < mol.Len(); i++ {
			at := mol.Atom(i)
			group := "ATOM"
			if at.Het {
				group = "HETATM"
			}
			charge := "?"
			if at.Charge != 0 {
				charge = strconv.FormatFloat(at.Charge, 'f', -1, 64)
			}
			frame.Row(c, i)
			_, err := fmt.Fprintf(out, "%s %d %s %s %s %s %d %.2f %s %d %.3f %.3f %.3f\n",
				group, at.ID, at.Symbol, at.Name, at.MolName, at.Chain, at.MolID,
				at.Occupancy, charge, j+1, c[0], c[1], c[2])
			if err != nil {
				return DError{err.Error(), []string{"PDBxWrite"}}
			}
		}
	}
	fmt.Fprint(out, "#\n")
	return nil
}
