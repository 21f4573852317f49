/*
 * doc.go, part of godock
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

/*Package dock is the main package of the goDock library, a library for the
geometric analysis of protein-ligand binding. It provides the atom and molecule
structures shared by the rest of the library, reads and writes PDB files and
parses the result records produced by docking programs.


	**goDock Capabilities**


    Reads/writes PDB files, including multi-MODEL files, where each MODEL
	becomes a separate set of coordinates for the same atoms (for a docked
	ligand, one MODEL per pose).

    Parses AutoDock-Vina-style result records (score plus RMSD bounds
	per pose).

    Builds van der Waals occupancy grids from a structure and locates
	candidate binding cavities on them (subpackages grid and cavity).

    Classifies protein-ligand contacts by geometric criteria and extracts
	binding-site residues (subpackage contact).

    Clusters docked poses by pairwise RMSD (subpackage cluster).

    Ties receptor, poses and derived results together in a cached session
	(subpackage analyze).

    Plots pocket volumes, score distributions and RMSD matrices
	(subpackage dockplot).

    Allows to select atoms and coordinates by using a go slice of indexes.

The coordinates of atoms are kept separate from the rest of the atomic
information: a Molecule is a Topology (the atoms) plus one or more frames of
coordinates, each a v3.Matrix. All distances are in Angstroms.
*/
package dock
