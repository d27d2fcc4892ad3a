package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/bitsquared/cachelineef/diskvec"
)

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: cachelineefbench query <path>")
	}

	v, err := diskvec.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer v.Close()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Printf("opened %s: len=%d byte_size=%d; commands: \"at <i>\", \"quit\"\n", fs.Arg(0), v.Len(), v.ByteSize())
	for {
		input, err := line.Prompt("cachelineef> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line.AppendHistory(input)

		cmd, rest, _ := strings.Cut(strings.TrimSpace(input), " ")
		switch cmd {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "at":
			idx, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				fmt.Println("usage: at <i>")
				continue
			}
			if idx < 0 || idx >= v.Len() {
				fmt.Printf("index %d out of bounds for length %d\n", idx, v.Len())
				continue
			}
			fmt.Println(v.At(idx))
		default:
			fmt.Printf("unknown command %q\n", cmd)
		}
	}
}
