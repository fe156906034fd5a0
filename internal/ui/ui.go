package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/nevisdale/mos6502/internal/cpu"
	"github.com/nevisdale/mos6502/internal/machine"
)

// P - pause/resume
// R - one step and stop
// I - IRQ
// N - NMI
// Backspace - reset

const (
	screenScale = 2

	panelWidth  = 300
	dumpWidth   = 420
	panelHeight = 600

	// debug font glyphs are 6x16
	lineHeight = 16

	disasmLinesAround = 10
	stackPage         = 0x01
)

var (
	panelColor   = color.RGBA{50, 50, 50, 255}
	dumpColor    = color.RGBA{30, 30, 40, 255}
	flagSetColor = color.RGBA{40, 200, 60, 255}
	flagClrColor = color.RGBA{200, 40, 40, 255}
)

type UI struct {
	m               *machine.Machine
	instrsPerUpdate int
}

type Option func(*UI)

// WithInstructionsPerUpdate sets how many instructions run per frame
// while the machine is not paused.
func WithInstructionsPerUpdate(n int) Option {
	return func(ui *UI) {
		if n > 0 {
			ui.instrsPerUpdate = n
		}
	}
}

func New(m *machine.Machine, opts ...Option) *UI {
	ui := &UI{
		m:               m,
		instrsPerUpdate: 1,
	}
	for _, opt := range opts {
		opt(ui)
	}
	return ui
}

func (ui *UI) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		ui.m.TogglePause()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		ui.m.OneStepAndStop()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		ui.m.IRQ()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		ui.m.NMI()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		ui.m.Reset()
	}

	for i := 0; i < ui.instrsPerUpdate; i++ {
		if !ui.m.Update() {
			break
		}
	}
	return nil
}

func (ui *UI) Draw(screen *ebiten.Image) {
	info := ui.m.DebugInfo()

	vector.DrawFilledRect(screen, 0, 0, panelWidth, panelHeight, panelColor, false)
	ebitenutil.DebugPrintAt(screen, ui.panelText(info), 0, 0)
	ui.drawFlags(screen, info.State)

	vector.DrawFilledRect(screen, panelWidth, 0, dumpWidth, panelHeight, dumpColor, false)
	var dump strings.Builder
	dump.WriteString(" ZERO PAGE\n")
	dump.WriteString(formatPage(ui.m.RAM().Page(0x00), 0x0000))
	dump.WriteString("\n STACK\n")
	dump.WriteString(formatPage(ui.m.RAM().Page(stackPage), stackPage<<8))
	ebitenutil.DebugPrintAt(screen, dump.String(), panelWidth, 0)
}

func (ui *UI) panelText(info machine.DebugInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, " FPS: %0.0f", ebiten.ActualFPS())
	if ui.m.Paused() {
		sb.WriteString("  PAUSED")
	}
	sb.WriteString("\n")
	// the flag boxes are drawn over the second line
	fmt.Fprintf(&sb, " STATUS:\n")
	fmt.Fprintf(&sb, " PC: $%04X  SP: $%02X\n", info.PC, info.SP)
	fmt.Fprintf(&sb, " A: $%02X [%03d]", info.A, info.A)
	fmt.Fprintf(&sb, " X: $%02X [%03d]", info.X, info.X)
	fmt.Fprintf(&sb, " Y: $%02X [%03d]\n", info.Y, info.Y)
	fmt.Fprintf(&sb, " CYC: %d (+%d)\n\n", info.TotalCycles, info.Cycles)

	listing := ui.m.Listing()
	for _, line := range listing.Around(info.PC, disasmLinesAround, disasmLinesAround) {
		if line.Addr == info.PC {
			sb.WriteString("*" + line.Text + "\n")
			continue
		}
		sb.WriteString(" " + line.Text + "\n")
	}
	return sb.String()
}

func (ui *UI) drawFlags(screen *ebiten.Image, s cpu.State) {
	const (
		boxSize = 10
		startX  = 60
		gap     = 24
	)
	for i, f := range []cpu.Flag{cpu.FlagN, cpu.FlagV, cpu.FlagU, cpu.FlagB, cpu.FlagD, cpu.FlagI, cpu.FlagZ, cpu.FlagC} {
		x := startX + i*gap
		clr := flagClrColor
		if s.Flag(f) {
			clr = flagSetColor
		}
		vector.DrawFilledRect(screen, float32(x), lineHeight+3, boxSize, boxSize, clr, false)
		ebitenutil.DebugPrintAt(screen, f.String(), x+boxSize+2, lineHeight)
	}
}

// formatPage renders 256 bytes as 16 rows of 16.
func formatPage(page []uint8, base uint16) string {
	var sb strings.Builder
	for row := 0; row < len(page); row += 16 {
		fmt.Fprintf(&sb, " %04X:", base+uint16(row))
		for _, b := range page[row:min(row+16, len(page))] {
			fmt.Fprintf(&sb, " %02X", b)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (ui *UI) Layout(_, _ int) (int, int) {
	return panelWidth + dumpWidth, panelHeight
}

func RunUI(ui *UI) error {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize((panelWidth+dumpWidth)*screenScale, panelHeight*screenScale)
	ebiten.SetWindowTitle("mos6502")
	ebiten.SetTPS(60)
	return ebiten.RunGame(ui)
}
