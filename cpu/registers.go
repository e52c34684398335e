package cpu

const (
	REGISTER_COUNT = 16  // General purpose registers.
	REGISTER_FLAG  = 0xf // VF, the carry, borrow, and collision flag.
)

// Registers is the CPU register file.
type Registers struct {
	V     [REGISTER_COUNT]uint8 // General purpose registers V0-VF.
	I     uint16                // Index register.
	Pc    uint16                // Program counter.
	Delay uint8                 // Delay timer.
	Sound uint8                 // Sound timer.
}

// Reset zeros the register file.
func (reg *Registers) Reset() {
	*reg = Registers{}
}

// Get returns Vx. Indices past VF are a programming fault.
func (reg *Registers) Get(x uint8) uint8 {
	if x >= REGISTER_COUNT {
		panic(ErrRegisterInvalid)
	}
	return reg.V[x]
}

// Set assigns Vx. Indices past VF are a programming fault.
func (reg *Registers) Set(x uint8, value uint8) {
	if x >= REGISTER_COUNT {
		panic(ErrRegisterInvalid)
	}
	reg.V[x] = value
}

// SetFlag sets VF to 1 or 0.
func (reg *Registers) SetFlag(set bool) {
	if set {
		reg.V[REGISTER_FLAG] = 1
	} else {
		reg.V[REGISTER_FLAG] = 0
	}
}

// DelayTimer returns the delay timer register.
func (reg *Registers) DelayTimer() uint8 {
	return reg.Delay
}

// SetDelayTimer sets the delay timer register.
func (reg *Registers) SetDelayTimer(value uint8) {
	reg.Delay = value
}

// SoundTimer returns the sound timer register.
func (reg *Registers) SoundTimer() uint8 {
	return reg.Sound
}

// SetSoundTimer sets the sound timer register.
func (reg *Registers) SetSoundTimer(value uint8) {
	reg.Sound = value
}
