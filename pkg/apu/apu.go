package apu

import "github.com/vibenes/core/pkg/savestate"

// MemoryReader interface for DMC to read from memory
type MemoryReader interface {
	Read(address uint16) uint8
}

// APU represents the Audio Processing Unit
type APU struct {
	// Pulse channels
	Pulse1 PulseChannel
	Pulse2 PulseChannel

	// Triangle channel
	Triangle TriangleChannel

	// Noise channel
	Noise NoiseChannel

	// DMC channel
	DMC DMCChannel

	// Frame counter
	FrameCounter uint8
	FrameStep    int
	FrameIRQ     bool

	// Cycle counter
	Cycles uint64

	// Output buffer
	Output []float32

	// Memory interface for DMC
	Memory MemoryReader
}

// PulseChannel represents a pulse wave channel
type PulseChannel struct {
	Enabled    bool
	DutyCycle  uint8
	Volume     uint8
	Sweep      SweepUnit
	Length     LengthCounter
	Envelope   EnvelopeGenerator
	Timer      uint16
	TimerValue uint16
	Sequence   uint8
}

// TriangleChannel represents the triangle wave channel
type TriangleChannel struct {
	Enabled       bool
	LinearCounter uint8
	LinearReload  uint8
	LinearControl bool // Control flag (halt length counter / reload linear counter)
	Length        LengthCounter
	Timer         uint16
	TimerValue    uint16
	Sequence      uint8
}

// NoiseChannel represents the noise channel
type NoiseChannel struct {
	Enabled    bool
	Volume     uint8
	Length     LengthCounter
	Envelope   EnvelopeGenerator
	Timer      uint16
	TimerValue uint16
	ShiftReg   uint16
	Mode       bool
}

// DMCChannel represents the Delta Modulation Channel
type DMCChannel struct {
	Enabled        bool
	IRQEnabled     bool
	Loop           bool
	Rate           uint8
	LoadCounter    uint8
	SampleAddress  uint16
	SampleLength   uint16
	CurrentAddress uint16
	CurrentLength  uint16
	Buffer         uint8
	ShiftReg       uint8
	BitsRemaining  uint8
	Silence        bool
	SampleBuffer   uint8
	BufferEmpty    bool
}

// SweepUnit represents a sweep unit
type SweepUnit struct {
	Enabled bool
	Period  uint8
	Negate  bool
	Shift   uint8
	Reload  bool
	Counter uint8
}

// LengthCounter represents a length counter
type LengthCounter struct {
	Enabled bool
	Value   uint8
	Halt    bool
}

// EnvelopeGenerator represents an envelope generator
type EnvelopeGenerator struct {
	Start    bool
	Loop     bool
	Constant bool
	Volume   uint8
	Counter  uint8
	Divider  uint8
}

// Length counter lookup table
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// New creates a new APU instance
func New() *APU {
	apu := &APU{
		Output: make([]float32, 0, 4096),
	}
	apu.initializeChannels()
	return apu
}

// SetMemory sets the memory interface for DMC
func (a *APU) SetMemory(mem MemoryReader) {
	a.Memory = mem
}

// Reset resets the APU to initial state
func (a *APU) Reset() {
	a.Pulse1 = PulseChannel{}
	a.Pulse2 = PulseChannel{}
	a.Triangle = TriangleChannel{}
	a.Noise = NoiseChannel{}
	a.DMC = DMCChannel{}
	a.FrameCounter = 0
	a.FrameStep = 0
	a.FrameIRQ = false
	a.Cycles = 0
	a.initializeChannels()
}

// Step executes one APU cycle
func (a *APU) Step() {
	a.Cycles++

	// Frame counter runs at about 240Hz (CPU speed / 7457.5), stepped
	// every 7458 cycles (rounded up, no fractional accumulation)
	if a.Cycles%7458 == 0 {
		a.stepFrameCounter()
	}

	// Step audio channels
	a.stepPulse(&a.Pulse1)
	a.stepPulse(&a.Pulse2)
	// Triangle timer is clocked every cycle, like the others
	a.stepTriangle()
	a.stepNoise()
	a.stepDMC()

	// Generate one audio sample per cycle (CPU rate)
	sample := a.Sample()
	a.Output = append(a.Output, sample)

	// Prevent buffer from growing too large
	if len(a.Output) > 2048 {
		// Keep only the most recent samples
		copy(a.Output, a.Output[len(a.Output)-1024:])
		a.Output = a.Output[:1024]
	}
}

// Sample mixes the current state of all five channels into one sample,
// using the standard non-linear pulse/TND mixing formulas. It reads
// channel state only; calling it twice in a row without an intervening
// Step returns the same value.
func (a *APU) Sample() float32 {
	return a.mixChannels()
}

// PullSample pops the oldest buffered sample for the driver's audio sink,
// reporting false once the buffer has drained (spec.md's
// `pull_audio_sample() -> Option<f32>`).
func (a *APU) PullSample() (float32, bool) {
	if len(a.Output) == 0 {
		return 0, false
	}
	sample := a.Output[0]
	a.Output = a.Output[1:]
	return sample, true
}

func (a *APU) savePulse(w *savestate.Writer, p *PulseChannel) {
	w.WriteBool(p.Enabled)
	w.WriteUint8(p.DutyCycle)
	w.WriteUint8(p.Volume)
	w.WriteBool(p.Sweep.Enabled)
	w.WriteUint8(p.Sweep.Period)
	w.WriteBool(p.Sweep.Negate)
	w.WriteUint8(p.Sweep.Shift)
	w.WriteBool(p.Sweep.Reload)
	w.WriteUint8(p.Sweep.Counter)
	w.WriteBool(p.Length.Enabled)
	w.WriteUint8(p.Length.Value)
	w.WriteBool(p.Length.Halt)
	w.WriteBool(p.Envelope.Start)
	w.WriteBool(p.Envelope.Loop)
	w.WriteBool(p.Envelope.Constant)
	w.WriteUint8(p.Envelope.Volume)
	w.WriteUint8(p.Envelope.Counter)
	w.WriteUint8(p.Envelope.Divider)
	w.WriteUint16(p.Timer)
	w.WriteUint16(p.TimerValue)
	w.WriteUint8(p.Sequence)
}

func (a *APU) loadPulse(r *savestate.Reader, p *PulseChannel) {
	p.Enabled = r.ReadBool()
	p.DutyCycle = r.ReadUint8()
	p.Volume = r.ReadUint8()
	p.Sweep.Enabled = r.ReadBool()
	p.Sweep.Period = r.ReadUint8()
	p.Sweep.Negate = r.ReadBool()
	p.Sweep.Shift = r.ReadUint8()
	p.Sweep.Reload = r.ReadBool()
	p.Sweep.Counter = r.ReadUint8()
	p.Length.Enabled = r.ReadBool()
	p.Length.Value = r.ReadUint8()
	p.Length.Halt = r.ReadBool()
	p.Envelope.Start = r.ReadBool()
	p.Envelope.Loop = r.ReadBool()
	p.Envelope.Constant = r.ReadBool()
	p.Envelope.Volume = r.ReadUint8()
	p.Envelope.Counter = r.ReadUint8()
	p.Envelope.Divider = r.ReadUint8()
	p.Timer = r.ReadUint16()
	p.TimerValue = r.ReadUint16()
	p.Sequence = r.ReadUint8()
}

// SaveState writes every channel's register state plus the frame-counter
// sequencer. The Output ring buffer is transient playback queue, not state,
// and is left empty across a load like a freshly-reset audio sink.
func (a *APU) SaveState(w *savestate.Writer) {
	a.savePulse(w, &a.Pulse1)
	a.savePulse(w, &a.Pulse2)

	w.WriteBool(a.Triangle.Enabled)
	w.WriteUint8(a.Triangle.LinearCounter)
	w.WriteUint8(a.Triangle.LinearReload)
	w.WriteBool(a.Triangle.LinearControl)
	w.WriteBool(a.Triangle.Length.Enabled)
	w.WriteUint8(a.Triangle.Length.Value)
	w.WriteBool(a.Triangle.Length.Halt)
	w.WriteUint16(a.Triangle.Timer)
	w.WriteUint16(a.Triangle.TimerValue)
	w.WriteUint8(a.Triangle.Sequence)

	w.WriteBool(a.Noise.Enabled)
	w.WriteUint8(a.Noise.Volume)
	w.WriteBool(a.Noise.Length.Enabled)
	w.WriteUint8(a.Noise.Length.Value)
	w.WriteBool(a.Noise.Length.Halt)
	w.WriteBool(a.Noise.Envelope.Start)
	w.WriteBool(a.Noise.Envelope.Loop)
	w.WriteBool(a.Noise.Envelope.Constant)
	w.WriteUint8(a.Noise.Envelope.Volume)
	w.WriteUint8(a.Noise.Envelope.Counter)
	w.WriteUint8(a.Noise.Envelope.Divider)
	w.WriteUint16(a.Noise.Timer)
	w.WriteUint16(a.Noise.TimerValue)
	w.WriteUint16(a.Noise.ShiftReg)
	w.WriteBool(a.Noise.Mode)

	w.WriteBool(a.DMC.Enabled)
	w.WriteBool(a.DMC.IRQEnabled)
	w.WriteBool(a.DMC.Loop)
	w.WriteUint8(a.DMC.Rate)
	w.WriteUint8(a.DMC.LoadCounter)
	w.WriteUint16(a.DMC.SampleAddress)
	w.WriteUint16(a.DMC.SampleLength)
	w.WriteUint16(a.DMC.CurrentAddress)
	w.WriteUint16(a.DMC.CurrentLength)
	w.WriteUint8(a.DMC.Buffer)
	w.WriteUint8(a.DMC.ShiftReg)
	w.WriteUint8(a.DMC.BitsRemaining)
	w.WriteBool(a.DMC.Silence)
	w.WriteUint8(a.DMC.SampleBuffer)
	w.WriteBool(a.DMC.BufferEmpty)

	w.WriteUint8(a.FrameCounter)
	w.WriteUint32(uint32(a.FrameStep))
	w.WriteBool(a.FrameIRQ)
	w.WriteUint64(a.Cycles)
}

// LoadState restores everything SaveState wrote.
func (a *APU) LoadState(r *savestate.Reader) error {
	a.loadPulse(r, &a.Pulse1)
	a.loadPulse(r, &a.Pulse2)

	a.Triangle.Enabled = r.ReadBool()
	a.Triangle.LinearCounter = r.ReadUint8()
	a.Triangle.LinearReload = r.ReadUint8()
	a.Triangle.LinearControl = r.ReadBool()
	a.Triangle.Length.Enabled = r.ReadBool()
	a.Triangle.Length.Value = r.ReadUint8()
	a.Triangle.Length.Halt = r.ReadBool()
	a.Triangle.Timer = r.ReadUint16()
	a.Triangle.TimerValue = r.ReadUint16()
	a.Triangle.Sequence = r.ReadUint8()

	a.Noise.Enabled = r.ReadBool()
	a.Noise.Volume = r.ReadUint8()
	a.Noise.Length.Enabled = r.ReadBool()
	a.Noise.Length.Value = r.ReadUint8()
	a.Noise.Length.Halt = r.ReadBool()
	a.Noise.Envelope.Start = r.ReadBool()
	a.Noise.Envelope.Loop = r.ReadBool()
	a.Noise.Envelope.Constant = r.ReadBool()
	a.Noise.Envelope.Volume = r.ReadUint8()
	a.Noise.Envelope.Counter = r.ReadUint8()
	a.Noise.Envelope.Divider = r.ReadUint8()
	a.Noise.Timer = r.ReadUint16()
	a.Noise.TimerValue = r.ReadUint16()
	a.Noise.ShiftReg = r.ReadUint16()
	a.Noise.Mode = r.ReadBool()

	a.DMC.Enabled = r.ReadBool()
	a.DMC.IRQEnabled = r.ReadBool()
	a.DMC.Loop = r.ReadBool()
	a.DMC.Rate = r.ReadUint8()
	a.DMC.LoadCounter = r.ReadUint8()
	a.DMC.SampleAddress = r.ReadUint16()
	a.DMC.SampleLength = r.ReadUint16()
	a.DMC.CurrentAddress = r.ReadUint16()
	a.DMC.CurrentLength = r.ReadUint16()
	a.DMC.Buffer = r.ReadUint8()
	a.DMC.ShiftReg = r.ReadUint8()
	a.DMC.BitsRemaining = r.ReadUint8()
	a.DMC.Silence = r.ReadBool()
	a.DMC.SampleBuffer = r.ReadUint8()
	a.DMC.BufferEmpty = r.ReadBool()

	a.FrameCounter = r.ReadUint8()
	a.FrameStep = int(r.ReadUint32())
	a.FrameIRQ = r.ReadBool()
	a.Cycles = r.ReadUint64()
	a.Output = a.Output[:0]
	return r.Err()
}

// stepFrameCounter steps the frame counter
func (a *APU) stepFrameCounter() {
	// 5-step mode (bit 7 set)
	if (a.FrameCounter & 0x80) != 0 {
		switch a.FrameStep {
		case 0, 2:
			a.stepEnvelopes()
			a.stepLinearCounter()
		case 1, 3:
			a.stepEnvelopes()
			a.stepLinearCounter()
			a.stepLengthCounters()
			a.stepSweeps()
		case 4:
			// Do nothing on step 4 in 5-step mode
		}
		a.FrameStep = (a.FrameStep + 1) % 5
	} else {
		// 4-step mode (default)
		switch a.FrameStep {
		case 0, 2:
			a.stepEnvelopes()
			a.stepLinearCounter()
		case 1, 3:
			a.stepEnvelopes()
			a.stepLinearCounter()
			a.stepLengthCounters()
			a.stepSweeps()
			if a.FrameStep == 3 && (a.FrameCounter&0x40) == 0 {
				a.FrameIRQ = true
			}
		}
		a.FrameStep = (a.FrameStep + 1) % 4
	}
}

// stepEnvelopes steps all envelope generators
func (a *APU) stepEnvelopes() {
	a.stepEnvelope(&a.Pulse1.Envelope)
	a.stepEnvelope(&a.Pulse2.Envelope)
	a.stepEnvelope(&a.Noise.Envelope)
}

// stepLengthCounters steps all length counters
func (a *APU) stepLengthCounters() {
	a.stepLengthCounter(&a.Pulse1.Length)
	a.stepLengthCounter(&a.Pulse2.Length)
	a.stepLengthCounter(&a.Triangle.Length)
	a.stepLengthCounter(&a.Noise.Length)
}

// stepSweeps steps all sweep units
func (a *APU) stepSweeps() {
	a.stepSweep(&a.Pulse1, &a.Pulse1.Sweep, true)
	a.stepSweep(&a.Pulse2, &a.Pulse2.Sweep, false)
}

// Channel stepping and mixing functions are implemented in channels.go

// IRQPending reports whether the APU is currently asserting the shared IRQ
// line (frame counter IRQ or DMC IRQ), without the read-clears-flag side
// effect that a real $4015 access has. The driver polls this every cycle to
// recompute the CPU's level-triggered IRQ line; only an actual $4015/$4017
// access acknowledges the flags themselves.
func (a *APU) IRQPending() bool {
	return a.FrameIRQ || (a.DMC.IRQEnabled && a.DMC.CurrentLength == 0)
}

// ReadRegister reads from APU register
func (a *APU) ReadRegister(addr uint16) uint8 {
	switch addr {
	case 0x4015: // Status
		status := uint8(0)
		if a.Pulse1.Length.Value > 0 {
			status |= 0x01
		}
		if a.Pulse2.Length.Value > 0 {
			status |= 0x02
		}
		if a.Triangle.Length.Value > 0 {
			status |= 0x04
		}
		if a.Noise.Length.Value > 0 {
			status |= 0x08
		}
		if a.DMC.CurrentLength > 0 {
			status |= 0x10
		}
		if a.FrameIRQ {
			status |= 0x40
		}
		if a.DMC.IRQEnabled && a.DMC.CurrentLength == 0 {
			status |= 0x80
		}

		// Reading status register clears frame IRQ
		a.FrameIRQ = false

		return status
	}
	return 0
}

// WriteRegister writes to APU register
func (a *APU) WriteRegister(addr uint16, value uint8) {
	switch addr {
	case 0x4000, 0x4001, 0x4002, 0x4003: // Pulse 1
		a.writePulse(&a.Pulse1, addr-0x4000, value)
	case 0x4004, 0x4005, 0x4006, 0x4007: // Pulse 2
		a.writePulse(&a.Pulse2, addr-0x4004, value)
	case 0x4008, 0x4009, 0x400A, 0x400B: // Triangle
		a.writeTriangle(addr-0x4008, value)
	case 0x400C, 0x400D, 0x400E, 0x400F: // Noise
		a.writeNoise(addr-0x400C, value)
	case 0x4010, 0x4011, 0x4012, 0x4013: // DMC
		a.writeDMC(addr-0x4010, value)
	case 0x4015: // Status
		a.writeStatus(value)
	case 0x4017: // Frame counter
		a.writeFrameCounter(value)
	}
}

// Register write functions are implemented in registers.go
