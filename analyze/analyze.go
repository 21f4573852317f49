/*
 * analyze.go, part of godock
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

/*Package analyze ties the godock pieces together: a Session owns a receptor,
a set of docked poses with their records, and the results derived from them
(occupancy grid, pockets, contact reports, RMSD matrix, clusters). Results
are computed on first use and cached in the Session. The caches are never
refreshed behind your back: changing the options, or anything else, calls
for an explicit Invalidate.*/
package analyze

import (
	"fmt"
	"log"

	dock "github.com/rmera/godock"
	"github.com/rmera/godock/cavity"
	"github.com/rmera/godock/cluster"
	"github.com/rmera/godock/contact"
	"github.com/rmera/godock/grid"
	"gonum.org/v1/gonum/mat"
)

//Session is one receptor plus, optionally, the docked poses of one ligand
//against it. It caches every derived result, so asking twice computes once.
//A Session is not safe for concurrent use.
type Session struct {
	receptor *dock.Molecule
	poses    *dock.Molecule
	records  []*dock.DockRecord
	//options, applied on the next (re)computation of each stage.
	gridOpts    *grid.Options
	cavityOpts  *cavity.Options
	contactOpts *contact.Options
	clusterOpts *cluster.Options
	//caches.
	grid       *grid.Grid
	surface    *grid.Grid
	probe      float64
	pockets    []*cavity.Pocket
	reports    map[int]*contact.Report
	rmsd       *mat.SymDense
	clusters   []*cluster.Cluster
	warnedOnce bool
}

//NewSession starts a session for the given receptor. poses and records can
//both be nil for a cavity-detection-only session; if both are given, they
//must be index-aligned, as the ones ReadVinaPoses returns. The receptor is
//used as given: if you don't want its waters and other hetero molecules
//seen by the contact classification, remove them first (see dock.CutLig).
func NewSession(receptor *dock.Molecule, poses *dock.Molecule, records []*dock.DockRecord) (*Session, error) {
	if receptor == nil || receptor.Len() == 0 {
		return nil, fmt.Errorf("analyze.NewSession: Nil or empty receptor")
	}
	if err := receptor.Corrupted(); err != nil {
		return nil, fmt.Errorf("analyze.NewSession: %w", err)
	}
	S := new(Session)
	S.receptor = receptor
	S.gridOpts = grid.DefaultOptions()
	S.cavityOpts = cavity.DefaultOptions()
	S.contactOpts = contact.DefaultOptions()
	S.clusterOpts = cluster.DefaultOptions()
	S.reports = make(map[int]*contact.Report)
	if poses != nil {
		if err := S.SetPoses(poses, records); err != nil {
			return nil, err
		}
	}
	return S, nil
}

//Load starts a session from a receptor PDB file and a Vina multi-MODEL
//output file.
func Load(receptorname, posesname string) (*Session, error) {
	receptor, err := dock.PDBFileRead(receptorname, true)
	if err != nil {
		return nil, fmt.Errorf("analyze.Load: %w", err)
	}
	poses, records, err := dock.ReadVinaPoses(posesname)
	if err != nil {
		return nil, fmt.Errorf("analyze.Load: %w", err)
	}
	return NewSession(receptor, poses, records)
}

//SetPoses replaces the session's poses and records, and drops every
//pose-derived cache. records can be nil for scoreless poses.
func (S *Session) SetPoses(poses *dock.Molecule, records []*dock.DockRecord) error {
	if poses == nil || poses.Len() == 0 {
		return fmt.Errorf("analyze.SetPoses: Nil or empty poses")
	}
	if err := poses.Corrupted(); err != nil {
		return fmt.Errorf("analyze.SetPoses: %w", err)
	}
	if records != nil && len(records) != poses.NFrames() {
		return fmt.Errorf("analyze.SetPoses: %d records for %d poses", len(records), poses.NFrames())
	}
	S.poses = poses
	S.records = records
	S.reports = make(map[int]*contact.Report)
	S.rmsd = nil
	S.clusters = nil
	S.warnedOnce = false
	return nil
}

//Receptor returns the session's receptor.
func (S *Session) Receptor() *dock.Molecule {
	return S.receptor
}

//Poses returns the session's poses, or nil for a cavity-only session.
func (S *Session) Poses() *dock.Molecule {
	return S.poses
}

//NPoses returns the number of poses in the session.
func (S *Session) NPoses() int {
	if S.poses == nil {
		return 0
	}
	return S.poses.NFrames()
}

//Records returns the session's docking records, or nil.
func (S *Session) Records() []*dock.DockRecord {
	return S.records
}

//Scores returns the scores of the session's poses, in pose order. Without
//records there are no scores, so zeros are returned, and the first call
//says so in the log.
func (S *Session) Scores() []float64 {
	if S.records != nil {
		return dock.Scores(S.records)
	}
	if !S.warnedOnce {
		log.Printf("Session has %d poses but no docking records. Will use 0.0 for every score", S.NPoses())
		S.warnedOnce = true
	}
	return make([]float64, S.NPoses())
}

//GridOptions returns the options for the occupancy grid, to be tuned before
//the first use. Changing them later only matters after an Invalidate.
func (S *Session) GridOptions() *grid.Options {
	return S.gridOpts
}

//CavityOptions returns the options for the pocket detection, to be tuned
//before the first use. Changing them later only matters after an Invalidate.
func (S *Session) CavityOptions() *cavity.Options {
	return S.cavityOpts
}

//ContactOptions returns the options for the contact classification, to be
//tuned before the first use. Changing them later only matters after an
//Invalidate, or an InvalidateReport for single poses.
func (S *Session) ContactOptions() *contact.Options {
	return S.contactOpts
}

//ClusterOptions returns the options for the pose clustering, to be tuned
//before the first use. Changing them later only matters after an Invalidate.
func (S *Session) ClusterOptions() *cluster.Options {
	return S.clusterOpts
}

//Invalidate drops every cached result, so the next use of each one
//recomputes it with the current options.
func (S *Session) Invalidate() {
	S.grid = nil
	S.surface = nil
	S.pockets = nil
	S.reports = make(map[int]*contact.Report)
	S.rmsd = nil
	S.clusters = nil
}

//InvalidateReport drops the cached contact report of one pose.
func (S *Session) InvalidateReport(pose int) {
	delete(S.reports, pose)
}

//Grid returns the occupancy grid of the receptor, building it on the first
//call.
func (S *Session) Grid() (*grid.Grid, error) {
	if S.grid != nil {
		return S.grid, nil
	}
	g, err := grid.Build(S.receptor.Coord(0), S.receptor, S.gridOpts)
	if err != nil {
		return nil, fmt.Errorf("analyze.Grid: %w", err)
	}
	S.grid = g
	return g, nil
}

//Surface returns the probe-accessible shell of the receptor, for
//visualization. The shell is cached for the last probe radius used.
func (S *Session) Surface(probe float64) (*grid.Grid, error) {
	if S.surface != nil && S.probe == probe {
		return S.surface, nil
	}
	g, err := S.Grid()
	if err != nil {
		return nil, err
	}
	S.surface = grid.Surface(g, probe)
	S.probe = probe
	return S.surface, nil
}

//Pockets returns the receptor's candidate binding pockets, best score
//first, detecting them on the first call.
func (S *Session) Pockets() ([]*cavity.Pocket, error) {
	if S.pockets != nil {
		return S.pockets, nil
	}
	g, err := S.Grid()
	if err != nil {
		return nil, err
	}
	pockets, err := cavity.Pockets(g, S.cavityOpts)
	if err != nil {
		return nil, fmt.Errorf("analyze.Pockets: %w", err)
	}
	cavity.SortBy(pockets, "score")
	S.pockets = pockets
	return pockets, nil
}

//Report returns the contact classification of the given pose against the
//receptor, classifying on the first call for each pose.
func (S *Session) Report(pose int) (*contact.Report, error) {
	if S.poses == nil {
		return nil, fmt.Errorf("analyze.Report: Session has no poses")
	}
	if pose < 0 || pose >= S.NPoses() {
		return nil, fmt.Errorf("analyze.Report: Pose %d out of range (%d poses)", pose, S.NPoses())
	}
	if rep, ok := S.reports[pose]; ok {
		return rep, nil
	}
	rep, err := contact.Classify(S.receptor.Coord(0), S.receptor, S.poses.Coord(pose), S.poses, S.contactOpts)
	if err != nil {
		return nil, fmt.Errorf("analyze.Report: pose %d: %w", pose, err)
	}
	S.reports[pose] = rep
	return rep, nil
}

//RMSDs returns the matrix of pairwise RMSDs between the session's poses,
//computing it on the first call.
func (S *Session) RMSDs() (*mat.SymDense, error) {
	if S.rmsd != nil {
		return S.rmsd, nil
	}
	if S.poses == nil {
		return nil, fmt.Errorf("analyze.RMSDs: Session has no poses")
	}
	m, err := cluster.RMSDMatrix(S.poses.Coords)
	if err != nil {
		return nil, fmt.Errorf("analyze.RMSDs: %w", err)
	}
	S.rmsd = m
	return m, nil
}

//Clusters returns the session's poses grouped by binding mode, best cluster
//first, clustering on the first call.
func (S *Session) Clusters() ([]*cluster.Cluster, error) {
	if S.clusters != nil {
		return S.clusters, nil
	}
	m, err := S.RMSDs()
	if err != nil {
		return nil, err
	}
	var scores []float64
	if S.records != nil {
		scores = dock.Scores(S.records)
	} //else nil, and the cluster package complains to the log
	clusters, err := cluster.FromMatrix(m, scores, S.clusterOpts)
	if err != nil {
		return nil, fmt.Errorf("analyze.Clusters: %w", err)
	}
	S.clusters = clusters
	return clusters, nil
}
