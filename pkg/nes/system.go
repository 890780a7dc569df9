// Package nes wires the CPU, PPU, APU, bus, cartridge, and controllers into
// one System and drives them with the single-threaded cooperative cycle
// pump described in spec.md §5: each CPU cycle, service one sub-cycle of an
// in-flight OAM DMA transfer, or else run the CPU's next instruction to
// completion; then tick the PPU three dots and the APU one cycle per CPU
// cycle consumed, and notify the cartridge of the new cycle count, applying
// any NMI/IRQ edge that falls out of it.
package nes

import (
	"fmt"
	"io"

	"github.com/vibenes/core/pkg/apu"
	"github.com/vibenes/core/pkg/cartridge"
	"github.com/vibenes/core/pkg/cpu"
	"github.com/vibenes/core/pkg/input"
	"github.com/vibenes/core/pkg/logger"
	"github.com/vibenes/core/pkg/memory"
	"github.com/vibenes/core/pkg/ppu"
	"github.com/vibenes/core/pkg/savestate"
)

// framebufferMaxCyclesPerFrame bounds StepFrame against a game that never
// produces a frame (e.g. a cartridge with no mapper wired), matching the
// "an instruction always completes" cancellation policy rather than hanging
// the driver forever.
const framebufferMaxCyclesPerFrame = 10_000_000

// System is the assembled NES: the core the host driver (CLI, GUI, test
// harness) calls into via PowerOn/Reset/StepCycles/StepFrame and the
// save-state and I/O surface below.
type System struct {
	CPU       *cpu.CPU
	PPU       *ppu.PPU
	APU       *apu.APU
	Bus       *memory.Memory
	Cartridge *cartridge.Cartridge
	Input     *input.Controller

	TotalCycles uint64
}

// New constructs a System with every component wired to the shared bus, but
// with no cartridge loaded yet.
func New() *System {
	s := &System{}
	s.Bus = memory.New()
	s.CPU = cpu.New(s.Bus)
	s.PPU = ppu.New(s.Bus)
	s.APU = apu.New()
	s.Input = input.New()

	s.Bus.SetPPU(s.PPU)
	s.Bus.SetAPU(s.APU)
	s.Bus.SetInput(s.Input)
	s.APU.SetMemory(s.Bus)

	return s
}

// LoadROM parses an iNES image and wires it into the bus and PPU, replacing
// any cartridge already loaded.
func (s *System) LoadROM(r io.Reader) error {
	cart, err := cartridge.LoadFromReader(r)
	if err != nil {
		return fmt.Errorf("load_rom: %w", err)
	}
	s.Cartridge = cart
	s.Bus.SetCartridge(cart)
	s.PPU.SetCartridge(cart)
	return nil
}

// PowerOn establishes cold-boot state across every component, matching real
// hardware's power-on sequence (spec.md §3 Lifecycles).
func (s *System) PowerOn() {
	s.Bus.PowerOn()
	s.CPU.PowerOn()
	s.PPU.Reset()
	s.APU.Reset()
	s.TotalCycles = 0
}

// Reset simulates the reset line: CPU state resets per its own Reset rule,
// work RAM and cartridge RAM are preserved, matching real hardware.
func (s *System) Reset() {
	s.Bus.Reset()
	s.CPU.Reset()
	s.PPU.Reset()
	s.APU.Reset()
}

// stepOneCycle advances the system by exactly one CPU cycle's worth of bus
// activity: either one DMA sub-cycle, or (if DMA is idle) the CPU's next
// full instruction, followed by the PPU/APU/mapper ticks that instruction's
// cycles are owed. Returns the number of CPU cycles actually consumed.
func (s *System) stepOneCycle() int {
	if s.Bus.DMAActive {
		s.Bus.ServiceDMACycle()
		s.tickPeripherals(1)
		return 1
	}

	cycles := int(s.CPU.Step())
	if cycles == 0 {
		// Halted CPU: PPU/APU keep running on real hardware even though the
		// CPU issues no further instructions (spec.md §7).
		cycles = 1
	}
	s.tickPeripherals(cycles)
	return cycles
}

// tickPeripherals advances the PPU three dots and the APU one cycle per CPU
// cycle elapsed, notifies the cartridge of the new bus cycle count, and
// applies any NMI/IRQ edges that fall out.
func (s *System) tickPeripherals(cpuCycles int) {
	// Deliver an NMI armed by the PPU on a prior call only now, after the
	// instruction that just ran (whose reads already happened, before this
	// call) had its chance to hit the VBlank race and cancel it.
	if s.PPU.ConsumeArmedNMI() {
		s.CPU.TriggerNMI()
	}

	for i := 0; i < cpuCycles; i++ {
		for dot := 0; dot < 3; dot++ {
			s.PPU.Tick()
		}
		s.APU.Step()
		s.Bus.TickCycle()
		mapperIRQ := false
		if s.Cartridge != nil {
			s.Cartridge.NotifyCPUCycle(s.Bus.CycleCount())
			mapperIRQ = s.Cartridge.IsIRQPending()
		}
		// irq_line is level-triggered: the OR of every source (spec.md §5).
		// It stays asserted until the source itself is acknowledged (mapper
		// IRQ disable write, $4015/$4017 access), never cleared here.
		if mapperIRQ || s.APU.IRQPending() {
			s.CPU.TriggerIRQ()
		} else {
			s.CPU.ClearIRQLine()
		}
		s.TotalCycles++
	}
}

// StepCycles runs at least n CPU cycles, stopping at the next instruction
// boundary at or after n (save states are only valid at instruction
// boundaries, so the pump never stops mid-instruction).
func (s *System) StepCycles(n int) {
	elapsed := 0
	for elapsed < n {
		elapsed += s.stepOneCycle()
	}
}

// StepFrame runs until the PPU completes a frame, then clears the
// completion flag so the next call runs exactly one more frame.
func (s *System) StepFrame() {
	cycles := 0
	for !s.PPU.FrameComplete {
		cycles += s.stepOneCycle()
		if cycles > framebufferMaxCyclesPerFrame {
			logger.LogWarn("step_frame exceeded %d cycles without completing a frame; forcing frame boundary", framebufferMaxCyclesPerFrame)
			break
		}
	}
	s.PPU.FrameComplete = false
}

// FrameBuffer returns the current frame as packed ARGB8888 pixels,
// spec.md's `frame_buffer() -> &[u32; 256*240]`.
func (s *System) FrameBuffer() []uint32 { return s.PPU.FrameBuffer[:] }

// FrameBufferRGBA returns the current frame as RGBA8888 bytes, for host
// drivers (GUI textures) that want byte-per-channel pixels.
func (s *System) FrameBufferRGBA() []uint8 { return s.PPU.GetFramebuffer() }

// PullAudioSample pops the oldest queued audio sample, spec.md's
// `pull_audio_sample() -> Option<f32>`.
func (s *System) PullAudioSample() (float32, bool) { return s.APU.PullSample() }

// SetButtons latches the full button mask for the given controller port
// (0 or 1), spec.md's `set_buttons(player, mask)`.
func (s *System) SetButtons(player int, mask uint8) { s.Input.SetButtons(player, mask) }

// componentOrder is the fixed sequence SaveState/LoadState serialize
// component blocks in (spec.md §6: CPU, PPU, APU, bus, cartridge), plus the
// controllers as a trailing block the distilled format doesn't name but a
// full save state needs to reproduce held input exactly.
func (s *System) componentOrder() []savestate.Serializable {
	return []savestate.Serializable{s.CPU, s.PPU, s.APU, s.Bus, s.Cartridge, s.Input}
}

// SaveState snapshots every component into the framed byte buffer described
// in spec.md §6, spec.md's `save_state() -> Vec<u8>`. Only valid once a ROM
// is loaded, since the header embeds the cartridge's PRG ROM CRC32.
func (s *System) SaveState() ([]byte, error) {
	if s.Cartridge == nil {
		return nil, fmt.Errorf("save_state: no cartridge loaded")
	}
	var blocks [][]byte
	for _, c := range s.componentOrder() {
		w := savestate.NewWriter()
		c.SaveState(w)
		blocks = append(blocks, w.Bytes())
	}
	return savestate.Encode(s.Cartridge.PRGROM, blocks), nil
}

// LoadState restores a buffer produced by SaveState, refusing (with
// ErrWrongROM or ErrCorrupt) rather than partially applying a state that
// doesn't match the loaded cartridge, spec.md's `load_state(Vec<u8>) ->
// Result`.
func (s *System) LoadState(data []byte) error {
	if s.Cartridge == nil {
		return fmt.Errorf("load_state: no cartridge loaded")
	}
	blocks, err := savestate.Decode(data, s.Cartridge.PRGROM)
	if err != nil {
		return err
	}
	order := s.componentOrder()
	if len(blocks) != len(order) {
		return savestate.ErrCorrupt
	}
	for i, c := range order {
		if err := c.LoadState(savestate.NewReader(blocks[i])); err != nil {
			return err
		}
	}
	return nil
}
