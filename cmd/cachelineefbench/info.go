package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/bitsquared/cachelineef/internal/cpuinfo"
)

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	info := cpuinfo.Snapshot()
	fmt.Printf("BMI2=%t POPCNT=%t\n", info.HasBMI2, info.HasPOPCNT)
	return nil
}
