//go:build amd64

package cpuinfo

import "golang.org/x/sys/cpu"

func snapshot() Info {
	return Info{
		HasBMI2:   cpu.X86.HasBMI2,
		HasPOPCNT: cpu.X86.HasPOPCNT,
	}
}
