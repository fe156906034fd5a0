package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/nevisdale/mos6502/internal/cpu"
	"github.com/nevisdale/mos6502/internal/disasm"
	"github.com/nevisdale/mos6502/internal/machine"
	"github.com/nevisdale/mos6502/internal/rom"
	"github.com/nevisdale/mos6502/internal/script"
	"github.com/nevisdale/mos6502/internal/ui"
	"github.com/pkg/profile"
)

const vectorsStart = 0xfffa

type config struct {
	hex        string
	org        string
	romPath    string
	nesPath    string
	steps      int
	trace      bool
	withUI     bool
	ipf        int
	scriptPath string
	disasm     string
	profile    string
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.hex, "hex", "", `program as hex bytes, e.g. "A9 10 8D 00 02"`)
	flag.StringVar(&cfg.org, "org", "0x0600", "load address of the -hex program")
	flag.StringVar(&cfg.romPath, "rom", "", "raw binary image ending at $FFFF")
	flag.StringVar(&cfg.nesPath, "nes", "", "iNES file with mapper 0")
	flag.IntVar(&cfg.steps, "steps", 0, "instructions to run without the UI")
	flag.BoolVar(&cfg.trace, "trace", false, "print every executed instruction")
	flag.BoolVar(&cfg.withUI, "ui", false, "open the debugger window")
	flag.IntVar(&cfg.ipf, "ipf", 1, "instructions per frame in the debugger")
	flag.StringVar(&cfg.scriptPath, "script", "", "lua script to run against the machine")
	flag.StringVar(&cfg.disasm, "disasm", "", "disassembly range start:end, e.g. 0600:0605")
	flag.StringVar(&cfg.profile, "profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()
	return cfg
}

func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(s, "$")
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return uint16(v), nil
}

func parseRange(s string) (uint16, uint16, error) {
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("bad range %q, expected start:end", s)
	}
	start, err := parseAddr(from)
	if err != nil {
		return 0, 0, err
	}
	end, err := parseAddr(to)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// load puts the requested program into m and returns the range it occupies.
func load(m *machine.Machine, cfg config) (uint16, uint16, bool, error) {
	switch {
	case cfg.hex != "":
		org, err := parseAddr(cfg.org)
		if err != nil {
			return 0, 0, false, err
		}
		data, err := rom.ParseHex(cfg.hex)
		if err != nil {
			return 0, 0, false, err
		}
		if err := m.LoadProgram(org, data); err != nil {
			return 0, 0, false, err
		}
		return org, org + uint16(len(data)), true, nil

	case cfg.romPath != "":
		img, err := rom.ReadImage(cfg.romPath)
		if err != nil {
			return 0, 0, false, err
		}
		if err := m.LoadImage(img); err != nil {
			return 0, 0, false, err
		}
		return img.Org, vectorsStart, true, nil

	case cfg.nesPath != "":
		img, err := rom.ReadINES(cfg.nesPath)
		if err != nil {
			return 0, 0, false, err
		}
		if err := m.LoadImage(img); err != nil {
			return 0, 0, false, err
		}
		return img.Org, vectorsStart, true, nil
	}
	return 0, 0, false, nil
}

func main() {
	log.SetFlags(log.Lshortfile | log.Lmicroseconds)
	cfg := parseFlags()

	switch cfg.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		log.Fatalf("unknown profile %q, use cpu or mem\n", cfg.profile)
	}

	m := machine.New(cpu.WithLogger(log.Default()))

	start, end, loaded, err := load(m, cfg)
	if err != nil {
		log.Fatalf("couldn't load the program: %s\n", err)
	}
	if !loaded && cfg.scriptPath == "" {
		log.Fatalln("nothing to run: use -hex, -rom, -nes or -script")
	}

	if cfg.disasm != "" {
		start, end, err = parseRange(cfg.disasm)
		if err != nil {
			log.Fatalf("couldn't parse -disasm: %s\n", err)
		}
	}
	listing := m.Disassemble(start, end)

	if cfg.scriptPath != "" {
		b := script.New(m, os.Stdout)
		defer b.Close()
		if err := b.RunFile(cfg.scriptPath); err != nil {
			log.Fatalf("%s\n", err)
		}
		return
	}

	if cfg.withUI {
		if err := ui.RunUI(ui.New(m, ui.WithInstructionsPerUpdate(cfg.ipf))); err != nil {
			log.Fatalf("ui: %s\n", err)
		}
		return
	}

	if cfg.disasm != "" {
		for _, line := range listing.Lines() {
			fmt.Println(line.Text)
		}
	}

	run(m, cfg.steps, cfg.trace)
}

func run(m *machine.Machine, steps int, trace bool) {
	cycles := color.New(color.FgCyan).SprintFunc()
	regs := color.New(color.FgYellow).SprintFunc()
	illegal := color.New(color.FgRed).SprintFunc()
	done := color.New(color.FgGreen).SprintFunc()

	for i := 0; i < steps; i++ {
		if !trace {
			m.Step()
			continue
		}

		// decode before executing, the instruction may overwrite itself
		pc := m.CPU().State().PC
		instr := m.CPU().Instruction(m.Read8(pc))
		text := fmt.Sprintf("%-28s", disasm.Format(m.RAM(), pc, instr))
		if !instr.Legal() {
			text = illegal(text)
		}

		m.Step()

		s := m.CPU().State()
		fmt.Printf("%s %s %s\n",
			cycles(fmt.Sprintf("%8d", s.TotalCycles)),
			text,
			regs(fmt.Sprintf("A:%02X X:%02X Y:%02X SP:%02X P:%s", s.A, s.X, s.Y, s.SP, s.StatusString())),
		)
	}

	fmt.Println(done(fmt.Sprintf("%d instructions executed", steps)))
	fmt.Println(m.DebugInfo().String())
}
