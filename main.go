package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func main() {
	// Machine defaults may live in a .env next to the jobs.
	_ = godotenv.Load()

	def := loadMachineDefaults()

	inputFile := flag.String("input", "", "Path to the input image (png, jpg, gif, bmp, tiff, webp, svg)")
	outputFile := flag.String("output", "output.gcode", "Path to output G-code file, - for stdout")
	m4 := flag.Bool("m4", def.m4, "Enable the laser with M4 (dynamic power) instead of M3 [LASER_M4]")
	width := flag.Float64("width", 100.0, "Output image width (mm)")
	pixelSize := flag.Float64("pixel", def.pixelSize, "Size of one output pixel (mm) [LASER_PIXEL_SIZE]")
	feedRate := flag.Float64("feed", def.feedRate, "Feed rate (mm/min) [LASER_FEED]")
	minPower := flag.Int("min-power", def.minPower, "Minimum laser S-value [LASER_MIN_POWER]")
	maxPower := flag.Int("max-power", def.maxPower, "Maximum laser S-value [LASER_MAX_POWER]")
	minRapid := flag.Float64("min-rapid", def.minRapid, "Minimum rapid distance (mm) [LASER_MIN_RAPID]")
	threshold := flag.Int("threshold", def.threshold, "Minimum pixel darkness that burns (0-255) [LASER_THRESHOLD]")
	intensity := flag.Int("intensity", def.intensity, "Laser intensity (%) [LASER_INTENSITY]")
	noRapids := flag.Bool("no-rapids", false, "Never use G0 for idle travel")
	noSkip := flag.Bool("no-skip", false, "Scan rows that contain nothing to burn")
	noTrim := flag.Bool("no-trim", false, "Keep dead travel at the row ends")
	quiet := flag.Bool("quiet", false, "Do not report progress")
	flag.Parse()

	if *inputFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	powerCfg := PowerConfig{
		MinPower:     *minPower,
		MaxPower:     *maxPower,
		Threshold:    *threshold,
		Intensity:    *intensity,
		HasIntensity: true,
	}
	motionCfg := MotionConfig{
		PixelSize:        *pixelSize,
		FeedRate:         *feedRate,
		MinRapidDistance: *minRapid,
		Mode:             ConstantPower,
		Optimize:         OptAll,
	}
	if *m4 {
		motionCfg.Mode = DynamicPower
	}
	if *noRapids {
		motionCfg.Optimize &^= OptRapids
	}
	if *noSkip {
		motionCfg.Optimize &^= OptSkipEmptyRows
	}
	if *noTrim {
		motionCfg.Optimize &^= OptTrimEdges
	}

	raster, err := LoadRaster(*inputFile, *width, *pixelSize)
	if err != nil {
		log.Fatalf("failed to load image: %v", err)
	}

	var progress ProgressFunc
	if !*quiet {
		progress = reportProgress(os.Stderr)
	}

	prog, err := Compile(raster, powerCfg, motionCfg, progress)
	if err != nil {
		log.Fatalf("failed to convert image to G-code: %v", err)
	}

	var buf bytes.Buffer
	if _, err := prog.WriteTo(&buf); err != nil {
		log.Fatalf("failed to render G-code: %v", err)
	}

	if *outputFile == "" || *outputFile == "-" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			log.Fatalf("failed to write G-code: %v", err)
		}
	} else if err = os.WriteFile(*outputFile, buf.Bytes(), 0644); err != nil {
		log.Fatalf("failed to write output file: %v", err)
	}

	st := prog.Stats()
	log.Printf("%dx%d pixels, %d burn moves, %d rapids, %.1fmm burning, %.1fmm idle",
		raster.Width, raster.Height, st.LinearMoves, st.RapidMoves, st.BurnLength, st.TravelLength)
	if *outputFile != "" && *outputFile != "-" {
		fmt.Fprintf(os.Stderr, "G-code successfully written to %s\n", *outputFile)
	}
}

// reportProgress prints a percentage whenever it changes.
func reportProgress(w io.Writer) ProgressFunc {
	last := -1
	return func(done, total int) {
		pct := done * 100 / total
		if pct == last {
			return
		}
		last = pct
		fmt.Fprintf(w, "\rGenerating G-code... %3d%%", pct)
		if done == total {
			fmt.Fprintln(w)
		}
	}
}

// machineDefaults are the flag defaults; each can be set per machine through
// the environment or a .env file.
type machineDefaults struct {
	m4        bool
	pixelSize float64
	feedRate  float64
	minPower  int
	maxPower  int
	minRapid  float64
	threshold int
	intensity int
}

func loadMachineDefaults() machineDefaults {
	return machineDefaults{
		m4:        envBool("LASER_M4", false),
		pixelSize: envFloat("LASER_PIXEL_SIZE", 0.25),
		feedRate:  envFloat("LASER_FEED", 900),
		minPower:  envInt("LASER_MIN_POWER", 2),
		maxPower:  envInt("LASER_MAX_POWER", 50),
		minRapid:  envFloat("LASER_MIN_RAPID", 10),
		threshold: envInt("LASER_THRESHOLD", 20),
		intensity: envInt("LASER_INTENSITY", 100),
	}
}

func envFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}
