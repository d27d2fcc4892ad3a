package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/bitsquared/cachelineef/diskvec"
)

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: cachelineefbench inspect <path>")
	}

	v, err := diskvec.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer v.Close()

	fmt.Printf("len=%d byte_size=%d\n", v.Len(), v.ByteSize())
	if v.Len() > 0 {
		fmt.Printf("first=%d last=%d\n", v.At(0), v.At(v.Len()-1))
	}
	return nil
}
