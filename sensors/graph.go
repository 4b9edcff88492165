package sensors

import (
	"bytes"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

var (
	ErrGraphAlreadyRunning = errors.New("live graph is already running")
	ErrGraphNotRunning     = errors.New("live graph is not running")
)

// Grapher periodically re-renders the live graph PNG from the simulator's
// latest readings. A slow or failed render skips that tick and the next one
// proceeds; the image file is swapped atomically so readers never see a
// partial PNG.
type Grapher struct {
	mu      sync.Mutex
	running bool
	stop    chan struct{}

	sim       *Simulator
	imagePath string
	interval  time.Duration
}

func NewGrapher(sim *Simulator, imagePath string, interval time.Duration) *Grapher {
	return &Grapher{sim: sim, imagePath: imagePath, interval: interval}
}

func (g *Grapher) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		return ErrGraphAlreadyRunning
	}
	g.running = true
	g.stop = make(chan struct{})
	go g.loop(g.stop)
	log.Printf("Live graph started (interval %s)", g.interval)
	return nil
}

func (g *Grapher) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.running {
		return ErrGraphNotRunning
	}
	close(g.stop)
	g.running = false
	log.Println("Live graph stopped")
	return nil
}

func (g *Grapher) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

func (g *Grapher) ImagePath() string { return g.imagePath }

func (g *Grapher) loop(stop chan struct{}) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	g.render()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			g.render()
		}
	}
}

func (g *Grapher) render() {
	readings := g.sim.Latest(LatestReadings)
	if len(readings) < 2 {
		return // chart needs at least two points
	}

	xs := make([]float64, len(readings))
	dos := make([]float64, len(readings))
	phs := make([]float64, len(readings))
	bods := make([]float64, len(readings))
	for i, r := range readings {
		xs[i] = float64(i)
		dos[i] = r.DO
		phs[i] = r.PH
		bods[i] = r.BOD
	}

	graph := chart.Chart{
		Title:  "Live water-quality readings",
		Width:  900,
		Height: 420,
		XAxis:  chart.XAxis{Name: "Reading"},
		YAxis:  chart.YAxis{Name: "Value"},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Dissolved oxygen (mg/L)", XValues: xs, YValues: dos},
			chart.ContinuousSeries{Name: "pH", XValues: xs, YValues: phs},
			chart.ContinuousSeries{Name: "BOD (mg/L)", XValues: xs, YValues: bods},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		log.Printf("Warning: live graph render failed: %v", err)
		return
	}

	tmp := g.imagePath + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		log.Printf("Warning: could not write live graph image: %v", err)
		return
	}
	if err := os.Rename(tmp, g.imagePath); err != nil {
		log.Printf("Warning: could not swap live graph image: %v", err)
	}
}
