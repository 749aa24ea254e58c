package descriptor

import (
	"bytes"
	"debug/elf"
	"debug/macho"
	"debug/pe"
)

// DetectFromExecutable sniffs an executable's binary header to recover its
// OS and Arch. It tries container formats in an order biased toward the
// host's own OS, since that's the format most likely to be correct, before
// falling back to the others (a Linux host might still be asked to inspect
// a downloaded Windows .exe, for instance).
func DetectFromExecutable(data []byte) (OS, Arch, bool) {
	order := formatProbeOrder(CurrentOS())
	for _, probe := range order {
		if os, arch, ok := probe(data); ok {
			return os, arch, true
		}
	}
	return 0, 0, false
}

type probeFunc func([]byte) (OS, Arch, bool)

func formatProbeOrder(host OS) []probeFunc {
	switch host {
	case MacOS:
		return []probeFunc{probeMachO, probeELF, probePE}
	case Windows:
		return []probeFunc{probePE, probeELF, probeMachO}
	default:
		return []probeFunc{probeELF, probeMachO, probePE}
	}
}

func probeELF(data []byte) (OS, Arch, bool) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()

	switch f.Machine {
	case elf.EM_AARCH64:
		return Linux, Arm64, true
	case elf.EM_X86_64:
		return Linux, X64, true
	case elf.EM_386:
		return Linux, X86, true
	case elf.EM_ARM:
		return Linux, Arm32, true
	default:
		return 0, 0, false
	}
}

func probeMachO(data []byte) (OS, Arch, bool) {
	if fat, err := macho.NewFatFile(bytes.NewReader(data)); err == nil {
		defer fat.Close()

		var found Arch
		matched := false
		for _, fa := range fat.Arches {
			arch, ok := machCPUToArch(fa.Cpu)
			if !ok {
				continue
			}
			if !matched {
				found = arch
				matched = true
				continue
			}
			if found != arch {
				return 0, 0, false
			}
		}
		if matched {
			return MacOS, found, true
		}
		return 0, 0, false
	}

	f, err := macho.NewFile(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()

	arch, ok := machCPUToArch(f.Cpu)
	if !ok {
		return 0, 0, false
	}
	return MacOS, arch, true
}

func machCPUToArch(cpu macho.Cpu) (Arch, bool) {
	switch cpu {
	case macho.CpuArm64:
		return Arm64, true
	case macho.CpuAmd64:
		return X64, true
	case macho.Cpu386:
		return X86, true
	case macho.CpuArm:
		return Arm32, true
	default:
		return 0, false
	}
}

func probePE(data []byte) (OS, Arch, bool) {
	f, err := pe.NewFile(bytes.NewReader(data))
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()

	switch f.Machine {
	case pe.IMAGE_FILE_MACHINE_ARM64:
		return Windows, Arm64, true
	case pe.IMAGE_FILE_MACHINE_AMD64:
		return Windows, X64, true
	case pe.IMAGE_FILE_MACHINE_I386:
		return Windows, X86, true
	case pe.IMAGE_FILE_MACHINE_ARM, pe.IMAGE_FILE_MACHINE_ARMNT:
		return Windows, Arm32, true
	default:
		return 0, 0, false
	}
}
