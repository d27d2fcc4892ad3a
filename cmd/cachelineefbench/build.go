package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/tailscale/hujson"

	flag "github.com/spf13/pflag"

	"github.com/bitsquared/cachelineef"
	"github.com/bitsquared/cachelineef/diskvec"
)

// genConfig describes a synthetic, monotone test sequence: count values,
// each one a random amount in [0, 2*avgDelta] above the previous one (the
// first one that far above base).
type genConfig struct {
	Count    int    `json:"count"`
	Base     uint64 `json:"base"`
	AvgDelta int    `json:"avg_delta"`
	Seed     int64  `json:"seed"`
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	in := fs.String("in", "", "path to a file of sorted u64 values, one per line")
	gen := fs.String("gen", "", "path to a hujson config describing a synthetic generator")
	out := fs.String("out", "", "if set, atomically write the diskvec wire format here")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var values []uint64
	var err error
	switch {
	case *in != "" && *gen != "":
		return fmt.Errorf("--in and --gen are mutually exclusive")
	case *in != "":
		values, err = readValuesFile(*in)
	case *gen != "":
		values, err = readGenConfig(*gen)
	default:
		return fmt.Errorf("one of --in or --gen is required")
	}
	if err != nil {
		return err
	}

	v := cachelineef.Build(values)
	fmt.Printf("len=%d byte_size=%d bits_per_value=%.2f\n",
		v.Len(), v.ByteSize(), 8*float64(v.ByteSize())/float64(max(v.Len(), 1)))

	if *out != "" {
		if err := diskvec.Create(*out, values); err != nil {
			return fmt.Errorf("writing %s: %w", *out, err)
		}
	}
	return nil
}

func readValuesFile(path string) ([]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var values []uint64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", line, err)
		}
		values = append(values, v)
	}
	return values, scanner.Err()
}

func readGenConfig(path string) ([]uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid hujson: %w", err)
	}

	cfg := genConfig{AvgDelta: 100}
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Count <= 0 {
		return nil, fmt.Errorf("config count must be positive, got %d", cfg.Count)
	}

	r := rand.New(rand.NewSource(cfg.Seed))
	values := make([]uint64, cfg.Count)
	cur := cfg.Base
	for i := range values {
		cur += uint64(r.Intn(2*cfg.AvgDelta + 1))
		values[i] = cur
	}
	return values, nil
}
