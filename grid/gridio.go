/*
 * gridio.go, part of godock
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

package grid

//Grids are written to disk as a compressed text format, GDX. A GDX file has
//an optional metadata header of key=value lines, one geometry line marked
//with "**" (dimensions, spacing and origin), and then one or more grids,
//each a sequence of "value count" run-length lines terminated by a "*" line.
//All grids in a file share the geometry. The compression is selected from
//the last letter of the filename: 'z' for gzip, 'r' for flate, 'l' for LZW
//and anything else (the recommended extension is .gdx) for zstd, which
//compresses these highly repetitive files the best in our tests.

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	dock "github.com/rmera/godock"
)

const (
	lzwLitwidth int = 8
)

//GridW is a handle for writing grids to a GDX file.
type GridW struct {
	f          *os.File
	h          io.WriteCloser
	nx, ny, nz int
	ox, oy, oz float64
	spacing    float64
	filename   string
	writeable  bool
}

//NewWriter opens the file name for writing and writes the header: the
//metadata map (only the first map given is written, nil is fine) and the
//geometry of geo, which every grid later given to WNext must share. The
//compression level applies to gzip and flate only (zstd always runs at its
//best level, LZW has no levels).
func NewWriter(name string, geo *Grid, header map[string]string, compressionLevel ...int) (*GridW, error) {
	var level int = 9
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	if geo == nil {
		return nil, Error{NilGrid, name, []string{"NewWriter"}, true}
	}
	S := new(GridW)
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	format := strings.ToLower(name)[len(name)-1]
	zwriter := func(a io.Writer) (io.WriteCloser, error) {
		r, err := flate.NewWriter(a, level)
		return r, err
	}
	gzipwriter := func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	zstdwriter := func(a io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	var AnyNewWriter func(io.Writer) (io.WriteCloser, error)
	switch format {
	case 'l':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return lzw.NewWriter(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewWriter = gzipwriter
	case 'r':
		AnyNewWriter = zwriter
	default:
		AnyNewWriter = zstdwriter
	}
	S.h, err = AnyNewWriter(S.f)
	if err != nil {
		S.f.Close()
		return nil, Error{"Can't build compressor " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.nx, S.ny, S.nz = geo.Dims()
	S.ox, S.oy, S.oz = geo.Origin()
	S.spacing = geo.Spacing()
	S.filename = name
	S.writeable = true
	if header != nil {
		headerstr := ""
		for k, v := range header {
			headerstr += fmt.Sprintf("%s=%v\n", k, v)
		}
		S.h.Write([]byte(headerstr))
	}
	S.h.Write([]byte(fmt.Sprintf("** %d %d %d %g %g %g %g\n", S.nx, S.ny, S.nz, S.spacing, S.ox, S.oy, S.oz)))
	return S, nil
}

//WNext writes one more grid to the file. The grid must share the geometry
//given to NewWriter.
func (S *GridW) WNext(g *Grid) error {
	if !S.writeable {
		return Error{GridUnIniWrite, S.filename, []string{"WNext"}, true}
	}
	if g == nil {
		return Error{NilGrid, S.filename, []string{"WNext"}, true}
	}
	nx, ny, nz := g.Dims()
	if nx != S.nx || ny != S.ny || nz != S.nz || g.Spacing() != S.spacing {
		return Error{fmt.Sprintf("%dx%dx%d grid given, but %dx%dx%d expected", nx, ny, nz, S.nx, S.ny, S.nz), S.filename, []string{"WNext"}, true}
	}
	val := g.data[0]
	count := 1
	for _, v := range g.data[1:] {
		if v == val {
			count++
			continue
		}
		S.h.Write([]byte(runEncode(val, count)))
		val = v
		count = 1
	}
	S.h.Write([]byte(runEncode(val, count)))
	S.h.Write([]byte("*\n"))
	return nil
}

//Close closes the handle. It can not be used after this call.
func (S *GridW) Close() {
	if S == nil {
		return
	}
	if S.writeable {
		S.h.Close()
		S.f.Close()
	}
	S.writeable = false
	return
}

func runEncode(val bool, count int) string {
	v := 0
	if val {
		v = 1
	}
	return fmt.Sprintf("%d %d\n", v, count)
}

//GridR is a handle for reading grids from a GDX file.
type GridR struct {
	f            *os.File
	zr           io.ReadCloser
	h            *bufio.Reader
	intermediate *bufio.Reader
	nx, ny, nz   int
	ox, oy, oz   float64
	spacing      float64
	filename     string
	readable     bool
}

//Why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type stdql struct {
	closeql func()
	*zstd.Decoder
}

//Close Closes the object. It can not be used after this call
func (s stdql) Close() error {
	s.closeql()
	return nil
}

//NewReader opens a GDX file for reading, and returns a pointer to the
//handle, a map with the metadata (or nil, if no metadata is found) and error
//or nil. The compression is selected from the filename as in NewWriter.
func NewReader(name string) (*GridR, map[string]string, error) {
	S := new(GridR)
	S.nx = -1 //just so we know if things don't work
	var m map[string]string
	var err error
	S.filename = name
	S.f, err = os.Open(S.filename)
	if err != nil {
		return nil, nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewReader"}, true}
	}
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	zreader := func(a io.Reader) (io.ReadCloser, error) {
		r := flate.NewReader(a)
		return r, nil
	}
	zstdreader := func(a io.Reader) (io.ReadCloser, error) {
		r, err := zstd.NewReader(a)
		ql := &stdql{r.Close, r}
		return ql, err
	}
	gzreader := func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return lzw.NewReader(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewReader = gzreader
	case 'r':
		AnyNewReader = zreader
	default:
		AnyNewReader = zstdreader
	}
	S.intermediate = bufio.NewReader(S.f)
	S.zr, err = AnyNewReader(S.intermediate)
	if err != nil {
		return nil, nil, Error{"Can't read header " + err.Error(), S.filename, []string{"NewReader"}, true}
	}
	S.h = bufio.NewReader(S.zr)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			return nil, nil, Error{"Can't read header " + err.Error(), S.filename, []string{"NewReader"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.Contains(str, "**") {
			err = S.geometryDecode(str)
			if err != nil {
				return nil, nil, errDecorate(err, "NewReader")
			}
			break
		}
		kv := strings.Split(str, "=")
		if len(kv) != 2 {
			return nil, nil, Error{"Malformed header line " + str, S.filename, []string{"NewReader"}, true}
		}
		if m == nil {
			m = make(map[string]string)
		}
		m[kv[0]] = kv[1]
	}
	S.readable = true
	return S, m, nil
}

//geometryDecode parses the "**" geometry line of the header.
func (S *GridR) geometryDecode(str string) error {
	fields := strings.Fields(str)
	if len(fields) < 8 {
		return Error{fmt.Sprintf("Can't read grid geometry from '%s'", str), S.filename, []string{"geometryDecode"}, true}
	}
	dims := make([]int, 3)
	var err error
	for i, v := range fields[1:4] {
		dims[i], err = strconv.Atoi(v)
		if err != nil {
			return Error{fmt.Sprintf("Can't read grid dimensions from '%s': %s", str, err.Error()), S.filename, []string{"geometryDecode"}, true}
		}
	}
	floats := make([]float64, 4)
	for i, v := range fields[4:8] {
		floats[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return Error{fmt.Sprintf("Can't read grid geometry from '%s': %s", str, err.Error()), S.filename, []string{"geometryDecode"}, true}
		}
	}
	S.nx, S.ny, S.nz = dims[0], dims[1], dims[2]
	S.spacing = floats[0]
	S.ox, S.oy, S.oz = floats[1], floats[2], floats[3]
	return nil
}

//Readable returns true if the handle is readable (if it is possible to call Next on it)
func (S *GridR) Readable() bool {
	return S.readable
}

//Next returns the next grid in the file. It returns io.EOF, and closes the
//handle, when no grids remain, which is the normal termination, not an
//actual error.
func (S *GridR) Next() (*Grid, error) {
	if !S.readable {
		return nil, Error{GridUnIniRead, S.filename, []string{"Next"}, true}
	}
	g, err := NewGrid(S.nx, S.ny, S.nz, S.ox, S.oy, S.oz, S.spacing)
	if err != nil {
		return nil, Error{err.Error(), S.filename, []string{"Next"}, true}
	}
	filled := 0
	size := g.Size()
	first := true
	for filled < size {
		str, err := S.h.ReadString('\n')
		if err != nil {
			if err == io.EOF && first {
				//nothing bad happened here, the file just ended.
				S.Close()
				return nil, io.EOF
			}
			return nil, Error{ReadError + ": " + err.Error(), S.filename, []string{"Next"}, true}
		}
		first = false
		val, count, err := runDecode(str)
		if err != nil {
			return nil, Error{err.Error(), S.filename, []string{"Next"}, true}
		}
		if filled+count > size {
			return nil, Error{fmt.Sprintf("%s: Runs exceed the %d voxels in the header", WrongFormat, size), S.filename, []string{"Next"}, true}
		}
		if val {
			for i := filled; i < filled+count; i++ {
				g.data[i] = true
			}
		}
		filled += count
	}
	str, err := S.h.ReadString('\n')
	if err != nil {
		return nil, Error{"Can't read the grid termination mark " + err.Error(), S.filename, []string{"Next"}, true}
	}
	if str[0] != '*' {
		return nil, Error{WrongFormat + ": Grid termination mark missing", S.filename, []string{"Next"}, true}
	}
	return g, nil
}

//Close closes the object, and marks it as unreadable
func (S *GridR) Close() {
	if !S.readable {
		return
	}
	S.zr.Close()
	S.readable = false
	return
}

func runDecode(str string) (bool, int, error) {
	s := strings.Fields(str)
	if len(s) != 2 {
		return false, 0, fmt.Errorf("Ill formated run line in gdx: %s", str)
	}
	v, err := strconv.Atoi(s[0])
	if err != nil || (v != 0 && v != 1) {
		return false, 0, fmt.Errorf("Ill formated run value in gdx: %s", str)
	}
	count, err := strconv.Atoi(s[1])
	if err != nil || count <= 0 {
		return false, 0, fmt.Errorf("Ill formated run count in gdx: %s", str)
	}
	return v == 1, count, nil
}

//FileWrite writes a single grid, plus the metadata in header (which can be
//nil) to the file name, compressed as NewWriter decides from the name.
func FileWrite(name string, g *Grid, header map[string]string) error {
	w, err := NewWriter(name, g, header)
	if err != nil {
		return errDecorate(err, "FileWrite")
	}
	err = w.WNext(g)
	w.Close()
	if err != nil {
		return errDecorate(err, "FileWrite")
	}
	return nil
}

//FileRead reads the first (often the only) grid from the file name.
func FileRead(name string) (*Grid, error) {
	r, _, err := NewReader(name)
	if err != nil {
		return nil, errDecorate(err, "FileRead")
	}
	g, err := r.Next()
	r.Close()
	if err != nil {
		if err == io.EOF {
			return nil, Error{"File contains no grids", name, []string{"FileRead"}, true}
		}
		return nil, errDecorate(err, "FileRead")
	}
	return g, nil
}

//Errors

//errDecorate is a helper function that asserts that the error
//implements dock.Error and decorates the error with the caller's name before returning it.
//if used with a non-dock.Error error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(dock.Error) //I know that is the type returned by the functions in this package
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for GDX file errors. It fullfills dock.Error
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("gdx file %s error: %s", err.filename, err.message)
}

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even thought this method does not use a pointer as a receiver, and tries to alter the received,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file to which the failing grid was associated
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	GridUnIniRead  = "GDX object uninitialized to read"
	GridUnIniWrite = "GDX object uninitialized to write"
	ReadError      = "Error reading grid"
	UnableToOpen   = "Unable to open file"
	NilGrid        = "Given nil grid"
	WrongFormat    = "Wrong format in the GDX file"
)
