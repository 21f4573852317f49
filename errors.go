/*
 * errors.go, part of godock
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

//DError is the concrete error type for the dock package ("Dock Error").
type DError struct {
	msg  string
	deco []string
}

//Error returns a string with an error message.
func (err DError) Error() string {
	return err.msg
}

//Decorate will add the dec string to the decoration slice of strings of the
//error, and return the resulting slice.
func (err DError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//errDecorate asserts that err implements Error, decorates it with the caller's
//name and returns it. It panics if given an error that doesn't implement
//Error, so it is only for use with errors produced by this library.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//PanicMsg is the type used for the error messages of the package. It does
//satisfy the error interface, as it is used for panics on caller bugs; for
//recoverable conditions use DError.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilData        = PanicMsg("goDock: Nil data given")
	ErrCorrupted      = PanicMsg("goDock: Inconsistent atoms and coordinates")
	ErrAtomOutOfRange = PanicMsg("goDock: Atom index out of range")
	ErrNoMass         = PanicMsg("goDock: Mass not set for atom")
	ErrNoAtoms        = PanicMsg("goDock: No atoms read or given")
	ErrPDBLine        = PanicMsg("goDock: Can't parse PDB line")
	ErrPDBxLine       = PanicMsg("goDock: Can't parse PDBx/mmCIF atom line")
	ErrVinaRecord     = PanicMsg("goDock: Can't parse Vina result record")
)
