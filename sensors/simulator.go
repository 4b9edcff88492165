package sensors

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"sync"
	"time"

	"go-aware/types"
)

const (
	// maxReadings bounds the in-memory buffer; /api/sensor-data serves at
	// most the latest 50 of these.
	maxReadings    = 500
	LatestReadings = 50
)

var (
	ErrAlreadyRunning = errors.New("sensors are already running")
	ErrNotRunning     = errors.New("sensors are not running")
)

// Simulator produces synthetic water-quality readings on a fixed interval.
// Each tick is independent: a failed CSV append is logged and the next tick
// proceeds. Stopping cancels the ticker goroutine; no timer outlives the
// simulator.
type Simulator struct {
	mu       sync.Mutex
	running  bool
	stop     chan struct{}
	readings []types.SensorReading

	interval time.Duration
	dataFile string
	rng      *rand.Rand
	current  types.SensorReading
}

func NewSimulator(dataFile string, interval time.Duration) *Simulator {
	return &Simulator{
		interval: interval,
		dataFile: dataFile,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		current: types.SensorReading{
			Temp: 28.0, DO: 6.0, PH: 7.2, Conductivity: 180,
			BOD: 2.5, Nitrate: 0.6, FecalColiform: 150, TotalColiform: 800,
		},
	}
}

// Start launches the tick loop. Starting an already running simulator is an
// error so the HTTP layer can answer "already_running".
func (s *Simulator) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}
	s.running = true
	s.stop = make(chan struct{})
	go s.loop(s.stop)
	log.Printf("Synthetic sensors started (interval %s)", s.interval)
	return nil
}

// Stop cancels the tick loop.
func (s *Simulator) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return ErrNotRunning
	}
	close(s.stop)
	s.running = false
	log.Println("Synthetic sensors stopped")
	return nil
}

func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Latest returns up to n readings, oldest first.
func (s *Simulator) Latest(n int) []types.SensorReading {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > len(s.readings) {
		n = len(s.readings)
	}
	out := make([]types.SensorReading, n)
	copy(out, s.readings[len(s.readings)-n:])
	return out
}

func (s *Simulator) loop(stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Simulator) tick() {
	s.mu.Lock()
	reading := s.nextReadingLocked()
	s.readings = append(s.readings, reading)
	if len(s.readings) > maxReadings {
		s.readings = s.readings[len(s.readings)-maxReadings:]
	}
	dataFile := s.dataFile
	s.mu.Unlock()

	if dataFile != "" {
		if err := appendCSV(dataFile, reading); err != nil {
			log.Printf("Warning: could not append sensor reading: %v", err)
		}
	}
}

// nextReadingLocked random-walks each parameter within plausible river-water
// ranges. Callers hold s.mu.
func (s *Simulator) nextReadingLocked() types.SensorReading {
	walk := func(v, step, min, max float64) float64 {
		v += (s.rng.Float64()*2 - 1) * step
		if v < min {
			v = min
		}
		if v > max {
			v = max
		}
		return v
	}

	s.current.Temp = walk(s.current.Temp, 0.4, 18, 36)
	s.current.DO = walk(s.current.DO, 0.3, 2, 10)
	s.current.PH = walk(s.current.PH, 0.1, 6.0, 9.0)
	s.current.Conductivity = walk(s.current.Conductivity, 8, 60, 600)
	s.current.BOD = walk(s.current.BOD, 0.3, 0.5, 8)
	s.current.Nitrate = walk(s.current.Nitrate, 0.1, 0, 4)
	s.current.FecalColiform = walk(s.current.FecalColiform, 25, 10, 2500)
	s.current.TotalColiform = walk(s.current.TotalColiform, 60, 50, 6000)

	reading := s.current
	reading.Timestamp = time.Now().Format(time.RFC3339)
	return reading
}

func appendCSV(path string, r types.SensorReading) error {
	writeHeader := false
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		writeHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open sensor data file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write([]string{"timestamp", "Temp", "DO", "pH", "Conductivity", "BOD", "Nitrate", "FecalColiform", "TotalColiform"}); err != nil {
			return err
		}
	}
	record := []string{
		r.Timestamp,
		formatFloat(r.Temp), formatFloat(r.DO), formatFloat(r.PH), formatFloat(r.Conductivity),
		formatFloat(r.BOD), formatFloat(r.Nitrate), formatFloat(r.FecalColiform), formatFloat(r.TotalColiform),
	}
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
