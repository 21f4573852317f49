/*
 * dockplot.go, part of godock
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

/*Package dockplot renders quick-look figures from godock results: pocket
scores, docking score distributions, contact counts and pose RMSD matrices.
These are working plots for the analysis notebook, not publication figures.*/
package dockplot

import (
	"fmt"
	"image/color"

	"github.com/rmera/godock/cavity"
	"github.com/rmera/godock/contact"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = vg.Millimeters(3)
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	return p
}

//PocketBars plots the scores of the given pockets as a bar chart, one bar
//per pocket labeled by rank, in the order given (so rank the list first,
//see cavity.SortBy). The plot goes, in png format, to plotname.png.
func PocketBars(pockets []*cavity.Pocket, title, plotname string) error {
	if len(pockets) == 0 {
		return fmt.Errorf("dockplot.PocketBars: No pockets given")
	}
	values := make(plotter.Values, len(pockets))
	names := make([]string, len(pockets))
	for i, pocket := range pockets {
		values[i] = pocket.Score
		names[i] = fmt.Sprintf("P%d", i+1)
	}
	p := basicPlot(title, "Pocket", "Score")
	p.Y.Min = 0
	p.Y.Max = 1
	bars, err := plotter.NewBarChart(values, vg.Points(25))
	if err != nil {
		return fmt.Errorf("dockplot.PocketBars: %w", err)
	}
	bars.Color = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	p.Add(bars)
	p.NominalX(names...)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(12*vg.Centimeter, 8*vg.Centimeter, filename); err != nil {
		return fmt.Errorf("dockplot.PocketBars: %w", err)
	}
	return nil
}

//ScoreHistogram plots the distribution of docking scores with the given
//number of bins (10, if bins is not positive). The plot goes, in png format,
//to plotname.png.
func ScoreHistogram(scores []float64, bins int, title, plotname string) error {
	if len(scores) == 0 {
		return fmt.Errorf("dockplot.ScoreHistogram: No scores given")
	}
	if bins <= 0 {
		bins = 10
	}
	p := basicPlot(title, "Score (kcal/mol)", "Poses")
	h, err := plotter.NewHist(plotter.Values(scores), bins)
	if err != nil {
		return fmt.Errorf("dockplot.ScoreHistogram: %w", err)
	}
	h.FillColor = color.RGBA{R: 200, G: 120, B: 50, A: 255}
	p.Add(h)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(12*vg.Centimeter, 8*vg.Centimeter, filename); err != nil {
		return fmt.Errorf("dockplot.ScoreHistogram: %w", err)
	}
	return nil
}

//ContactBars plots the number of contacts of each type in the given report
//as a bar chart. The plot goes, in png format, to plotname.png.
func ContactBars(rep *contact.Report, title, plotname string) error {
	if rep == nil {
		return fmt.Errorf("dockplot.ContactBars: Nil report given")
	}
	values := plotter.Values{
		float64(len(rep.HBonds)),
		float64(len(rep.Hydrophobic)),
		float64(len(rep.Ionic)),
		float64(len(rep.Stacking)),
	}
	p := basicPlot(title, "", "Contacts")
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return fmt.Errorf("dockplot.ContactBars: %w", err)
	}
	bars.Color = color.RGBA{R: 90, G: 160, B: 90, A: 255}
	p.Add(bars)
	p.NominalX("Hbond", "Hydrophobic", "Ionic", "Stacking")
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(12*vg.Centimeter, 8*vg.Centimeter, filename); err != nil {
		return fmt.Errorf("dockplot.ContactBars: %w", err)
	}
	return nil
}

//rmsdGrid adapts a symmetric RMSD matrix to the heatmap's grid interface,
//with pose indexes on both axes.
type rmsdGrid struct {
	m *mat.SymDense
}

func (g rmsdGrid) Dims() (int, int) {
	n, _ := g.m.Dims()
	return n, n
}

func (g rmsdGrid) X(c int) float64 { return float64(c) }

func (g rmsdGrid) Y(r int) float64 { return float64(r) }

func (g rmsdGrid) Z(c, r int) float64 { return g.m.At(r, c) }

//RMSDHeatMap plots the pairwise RMSD matrix of a set of poses (see
//cluster.RMSDMatrix) as a heatmap, hotter for more dissimilar poses. Blocks
//of cool cells along the diagonal are the clusters. The plot goes, in png
//format, to plotname.png.
func RMSDHeatMap(rmsd *mat.SymDense, title, plotname string) error {
	if rmsd == nil {
		return fmt.Errorf("dockplot.RMSDHeatMap: Nil RMSD matrix given")
	}
	p := basicPlot(title, "Pose", "Pose")
	h := plotter.NewHeatMap(rmsdGrid{rmsd}, palette.Heat(12, 1))
	p.Add(h)
	filename := fmt.Sprintf("%s.png", plotname)
	if err := p.Save(12*vg.Centimeter, 12*vg.Centimeter, filename); err != nil {
		return fmt.Errorf("dockplot.RMSDHeatMap: %w", err)
	}
	return nil
}
