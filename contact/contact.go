/*
 * contact.go, part of godock
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

/*Package contact classifies the geometric contacts between a protein and a
docked ligand pose into interaction types (hydrogen bond, hydrophobic, ionic
and stacking), with simple element- and residue-based rules, and collects the
binding-site residues. The rules are heuristics over plain distances: they
don't see protonation states or orbital geometry, so take the classification
as a footprint of the pose, not as chemistry.*/
package contact

import (
	"fmt"
	"math"
	"runtime"
	"sort"

	dock "github.com/rmera/godock"
	v3 "github.com/rmera/godock/v3"
)

//Interaction is one classified protein-ligand atom pair. The distance is in
//Angstroms. The same pair can appear in several of the lists of a Report, as
//the categories are not mutually exclusive.
type Interaction struct {
	ProteinAtom *dock.Atom
	LigandAtom  *dock.Atom
	Distance    float64
}

//String returns a one-line description of the interaction.
func (I *Interaction) String() string {
	p := I.ProteinAtom
	l := I.LigandAtom
	return fmt.Sprintf("%s %d %s %s -- %s %s: %4.2f A", p.MolName, p.MolID, p.Chain, p.Name, l.MolName, l.Name, I.Distance)
}

//Residue identifies one protein residue, by chain, number and name.
type Residue struct {
	Chain   string
	MolID   int
	MolName string
}

//String returns the residue as "NAME ID CHAIN".
func (R Residue) String() string {
	return fmt.Sprintf("%s %d %s", R.MolName, R.MolID, R.Chain)
}

//Report is the contact classification of one pose against the protein. The
//four interaction lists are ordered by protein atom, then ligand atom, in
//input order. Site lists the residues with any atom within the binding-site
//cutoff of any ligand atom, deduplicated and sorted by chain, residue number
//and name, so reports of the same pose are always identical.
type Report struct {
	HBonds      []*Interaction
	Hydrophobic []*Interaction
	Ionic       []*Interaction
	Stacking    []*Interaction
	Site        []Residue
}

//Total returns the total number of classified interactions in the report,
//counting a pair once per category it qualifies for.
func (R *Report) Total() int {
	return len(R.HBonds) + len(R.Hydrophobic) + len(R.Ionic) + len(R.Stacking)
}

//String returns a one-line summary of the report.
func (R *Report) String() string {
	return fmt.Sprintf("%d hydrogen bonds, %d hydrophobic, %d ionic, %d stacking contacts, %d site residues", len(R.HBonds), len(R.Hydrophobic), len(R.Ionic), len(R.Stacking), len(R.Site))
}

//Options contains the options for the contact classification: one distance
//cutoff per interaction type, the binding-site cutoff, and the number of
//CPUs to use.
type Options struct {
	hbond       float64
	hydrophobic float64
	ionic       float64
	stacking    float64
	site        float64
	cpus        int
}

//DefaultOptions returns an Options with the usual literature cutoffs: 3.5 A
//for hydrogen bonds, 4.0 A for hydrophobic and ionic contacts, 5.5 A for
//stacking and 4.5 A for the binding site.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.hbond = 3.5
	ret.hydrophobic = 4.0
	ret.ionic = 4.0
	ret.stacking = 5.5
	ret.site = 4.5
	ret.cpus = runtime.NumCPU()
	return ret
}

//HBond returns the hydrogen-bond distance cutoff, in Angstroms, and sets it,
//if a positive value is given.
func (o *Options) HBond(cutoff ...float64) float64 {
	ret := o.hbond
	if len(cutoff) > 0 && cutoff[0] > 0 {
		o.hbond = cutoff[0]
	}
	return ret
}

//Hydrophobic returns the hydrophobic-contact distance cutoff, in Angstroms,
//and sets it, if a positive value is given.
func (o *Options) Hydrophobic(cutoff ...float64) float64 {
	ret := o.hydrophobic
	if len(cutoff) > 0 && cutoff[0] > 0 {
		o.hydrophobic = cutoff[0]
	}
	return ret
}

//Ionic returns the ionic-contact distance cutoff, in Angstroms, and sets it,
//if a positive value is given.
func (o *Options) Ionic(cutoff ...float64) float64 {
	ret := o.ionic
	if len(cutoff) > 0 && cutoff[0] > 0 {
		o.ionic = cutoff[0]
	}
	return ret
}

//Stacking returns the stacking distance cutoff, in Angstroms, and sets it,
//if a positive value is given.
func (o *Options) Stacking(cutoff ...float64) float64 {
	ret := o.stacking
	if len(cutoff) > 0 && cutoff[0] > 0 {
		o.stacking = cutoff[0]
	}
	return ret
}

//Site returns the binding-site distance cutoff, in Angstroms, and sets it,
//if a positive value is given.
func (o *Options) Site(cutoff ...float64) float64 {
	ret := o.site
	if len(cutoff) > 0 && cutoff[0] > 0 {
		o.site = cutoff[0]
	}
	return ret
}

//Cpus returns the number of goroutines to be used in the classification, and
//sets it, if a valid value is given.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

func isNO(symbol string) bool {
	return symbol == "N" || symbol == "O"
}

//Classify computes the distance between every protein-ligand atom pair, once
//per pair, and evaluates each pair against every interaction rule:
//
// Hydrogen bond: both atoms N or O, within the hbond cutoff.
// Hydrophobic: both atoms C, within the hydrophobic cutoff.
// Ionic: a protein N or O belonging to a charged residue (ASP, GLU, LYS,
// ARG or HIS) against a ligand N or O, within the ionic cutoff.
// Stacking: both atoms C, the protein one belonging to an aromatic residue
// (PHE, TYR, TRP or HIS), within the stacking cutoff.
//
//A pair can qualify for several categories at once. Protein atoms within the
//binding-site cutoff of any ligand atom get their residue into the site
//list. The cost is proportional to the product of the two atom counts. That
//is fine for a protein against a drug-sized ligand; for something much
//bigger, cut the protein down to the region of interest first (see
//dock.CutMol and dock.Molecules2Atoms).
func Classify(protein *v3.Matrix, pmol dock.Atomer, ligand *v3.Matrix, lmol dock.Atomer, options ...*Options) (*Report, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if protein == nil || pmol == nil || ligand == nil || lmol == nil {
		return nil, fmt.Errorf("contact.Classify: Nil coordinates or topology given")
	}
	P := protein.NVecs()
	L := ligand.NVecs()
	if P == 0 || L == 0 {
		return nil, fmt.Errorf("contact.Classify: Empty protein (%d atoms) or ligand (%d atoms)", P, L)
	}
	if P != pmol.Len() || L != lmol.Len() {
		return nil, fmt.Errorf("contact.Classify: Coordinates and topology don't match: %d/%d protein, %d/%d ligand", P, pmol.Len(), L, lmol.Len())
	}
	cpus := o.cpus
	if cpus > P {
		cpus = P
	}
	var parts []*partial
	if cpus <= 1 {
		parts = []*partial{classifyChunk(protein, pmol, ligand, lmol, o, 0, P)}
	} else {
		//each goroutine classifies a contiguous chunk of protein atoms, and
		//the partial reports are merged in chunk order, so the result is the
		//same as the serial one.
		results := make([]chan *partial, cpus)
		for i := range results {
			results[i] = make(chan *partial)
		}
		chunk := P / cpus
		for i := 0; i < cpus; i++ {
			start := i * chunk
			end := start + chunk
			if i == cpus-1 {
				end = P
			}
			go func(start, end int, result chan *partial) {
				result <- classifyChunk(protein, pmol, ligand, lmol, o, start, end)
			}(start, end, results[i])
		}
		parts = make([]*partial, 0, cpus)
		for _, k := range results {
			parts = append(parts, <-k)
		}
	}
	ret := new(Report)
	site := make(map[Residue]bool)
	for _, p := range parts {
		ret.HBonds = append(ret.HBonds, p.hbonds...)
		ret.Hydrophobic = append(ret.Hydrophobic, p.hydrophobic...)
		ret.Ionic = append(ret.Ionic, p.ionic...)
		ret.Stacking = append(ret.Stacking, p.stacking...)
		for r := range p.site {
			site[r] = true
		}
	}
	ret.Site = make([]Residue, 0, len(site))
	for r := range site {
		ret.Site = append(ret.Site, r)
	}
	sort.Stable(residueSort(ret.Site))
	return ret, nil
}

//partial is the classification of a chunk of protein atoms against the whole
//ligand.
type partial struct {
	hbonds      []*Interaction
	hydrophobic []*Interaction
	ionic       []*Interaction
	stacking    []*Interaction
	site        map[Residue]bool
}

func classifyChunk(protein *v3.Matrix, pmol dock.Atomer, ligand *v3.Matrix, lmol dock.Atomer, o *Options, start, end int) *partial {
	ret := new(partial)
	ret.site = make(map[Residue]bool)
	L := ligand.NVecs()
	for i := start; i < end; i++ {
		pat := pmol.Atom(i)
		px, py, pz := protein.At(i, 0), protein.At(i, 1), protein.At(i, 2)
		pNO := isNO(pat.Symbol)
		pC := pat.Symbol == "C"
		charged := pNO && dock.ChargedResidue(pat.MolName)
		aromatic := pC && dock.AromaticResidue(pat.MolName)
		for j := 0; j < L; j++ {
			lat := lmol.Atom(j)
			dx := px - ligand.At(j, 0)
			dy := py - ligand.At(j, 1)
			dz := pz - ligand.At(j, 2)
			dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
			var in *Interaction //built lazily, and shared by every list the pair lands in
			inter := func() *Interaction {
				if in == nil {
					in = &Interaction{ProteinAtom: pat, LigandAtom: lat, Distance: dist}
				}
				return in
			}
			if pNO && isNO(lat.Symbol) && dist <= o.hbond {
				ret.hbonds = append(ret.hbonds, inter())
			}
			if pC && lat.Symbol == "C" && dist <= o.hydrophobic {
				ret.hydrophobic = append(ret.hydrophobic, inter())
			}
			if charged && isNO(lat.Symbol) && dist <= o.ionic {
				ret.ionic = append(ret.ionic, inter())
			}
			if aromatic && lat.Symbol == "C" && dist <= o.stacking {
				ret.stacking = append(ret.stacking, inter())
			}
			if dist <= o.site {
				ret.site[Residue{Chain: pat.Chain, MolID: pat.MolID, MolName: pat.MolName}] = true
			}
		}
	}
	return ret
}

type residueSort []Residue

func (r residueSort) Len() int { return len(r) }

func (r residueSort) Swap(i, j int) { r[i], r[j] = r[j], r[i] }

func (r residueSort) Less(i, j int) bool {
	if r[i].Chain != r[j].Chain {
		return r[i].Chain < r[j].Chain
	}
	if r[i].MolID != r[j].MolID {
		return r[i].MolID < r[j].MolID
	}
	return r[i].MolName < r[j].MolName
}
