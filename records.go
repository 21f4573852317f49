/*
 * records.go, part of godock
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

//records.go deals with the result records produced by docking programs.
//goDock doesn't run the docking program itself, it only consumes its output.

package dock

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

//DockRecord is the result record for one docked pose, as reported by the
//docking program. Score is in the program's energy units (kcal/mol for Vina),
//lower is better. The RMSD bounds are relative to the best pose of the same
//run; they are only meaningful if HasBounds is true (programs other than Vina
//may not report them).
type DockRecord struct {
	PoseIndex int
	Score     float64
	RMSDLow   float64
	RMSDUp    float64
	HasBounds bool
}

//String returns a one-line representation of the record.
func (D *DockRecord) String() string {
	if !D.HasBounds {
		return fmt.Sprintf("pose %d score %5.2f", D.PoseIndex, D.Score)
	}
	return fmt.Sprintf("pose %d score %5.2f rmsd l.b. %5.2f rmsd u.b. %5.2f", D.PoseIndex, D.Score, D.RMSDLow, D.RMSDUp)
}

//ReadVinaRecords scans a Vina output stream (normally the docked-poses PDBQT
//file) for "REMARK VINA RESULT" lines and returns one DockRecord per line
//found, in order of appearance. PoseIndex is assigned sequentially from 0, so
//it matches the frame indexes of the corresponding Molecule. If the stream
//contains no result lines, an empty slice and no error are returned: it is up
//to the caller to decide whether scoreless poses are a problem. A result line
//that can't be parsed is always an error; no made-up values are returned.
func ReadVinaRecords(vinaout io.Reader) ([]*DockRecord, error) {
	records := make([]*DockRecord, 0, 10)
	buf := bufio.NewReader(vinaout)
	for {
		line, err := buf.ReadString('\n')
		if err != nil && len(line) == 0 {
			break
		}
		if strings.HasPrefix(line, "REMARK VINA RESULT") {
			record, err2 := parseVinaResult(line, len(records))
			if err2 != nil {
				return nil, errDecorate(err2, "ReadVinaRecords")
			}
			records = append(records, record)
		}
		if err != nil {
			break
		}
	}
	return records, nil
}

//VinaFileRecords reads the docking records from the Vina output file name.
func VinaFileRecords(name string) ([]*DockRecord, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := ReadVinaRecords(f)
	if err != nil {
		return nil, errDecorate(err, "VinaFileRecords: "+name)
	}
	return records, nil
}

//parseVinaResult parses one "REMARK VINA RESULT: score rmsd_lb rmsd_ub" line.
func parseVinaResult(line string, index int) (*DockRecord, error) {
	split := strings.Fields(line)
	if len(split) < 6 {
		return nil, DError{fmt.Sprintf("%s: %s", ErrVinaRecord, line), []string{"parseVinaResult"}}
	}
	record := new(DockRecord)
	record.PoseIndex = index
	var err [3]error
	record.Score, err[0] = strconv.ParseFloat(split[3], 64)
	record.RMSDLow, err[1] = strconv.ParseFloat(split[4], 64)
	record.RMSDUp, err[2] = strconv.ParseFloat(split[5], 64)
	for _, e := range err {
		if e != nil {
			return nil, DError{fmt.Sprintf("%s: %s: %s", ErrVinaRecord, e.Error(), line), []string{"parseVinaResult"}}
		}
	}
	record.HasBounds = true
	return record, nil
}

//Scores returns the scores of the given records, in record order.
func Scores(records []*DockRecord) []float64 {
	scores := make([]float64, len(records))
	for i, rec := range records {
		scores[i] = rec.Score
	}
	return scores
}

//ReadPoses reads one PDB file per pose, in the order given, and returns a
//single Molecule where each frame is one pose. All files must contain the
//same number of atoms, in the same order, as they are poses of the same
//ligand; a file that doesn't match the first one is an error. The atoms
//themselves are taken from the first file. Files holding several MODELs
//contribute all their frames.
func ReadPoses(names ...string) (*Molecule, error) {
	if len(names) == 0 {
		return nil, DError{string(ErrNoAtoms), []string{"ReadPoses"}}
	}
	var mol *Molecule
	for _, name := range names {
		read, err := PDBFileRead(name, true)
		if err != nil {
			return nil, errDecorate(err, "ReadPoses")
		}
		if mol == nil {
			mol = read
			continue
		}
		if read.Len() != mol.Len() {
			return nil, DError{fmt.Sprintf("%s: %s has %d atoms, the first pose has %d", ErrCorrupted, name, read.Len(), mol.Len()), []string{"ReadPoses"}}
		}
		mol.Coords = append(mol.Coords, read.Coords...)
	}
	return mol, nil
}

//ReadVinaPoses reads a multi-MODEL Vina output file, returning the poses as
//the frames of a Molecule plus the result records for each pose. The two
//return values are index-aligned. Vina PDBQT output is close enough to PDB
//for the columns this library reads.
func ReadVinaPoses(name string) (*Molecule, []*DockRecord, error) {
	mol, err := PDBFileRead(name, false) //the charge column in PDBQT is not PDB-like, so we don't read it
	if err != nil {
		return nil, nil, errDecorate(err, "ReadVinaPoses")
	}
	records, err := VinaFileRecords(name)
	if err != nil {
		return nil, nil, errDecorate(err, "ReadVinaPoses")
	}
	if len(records) > 0 && len(records) != mol.NFrames() {
		return nil, nil, DError{fmt.Sprintf("%s: %d records for %d poses", ErrCorrupted, len(records), mol.NFrames()), []string{"ReadVinaPoses"}}
	}
	return mol, records, nil
}

