package device

const (
	FLAGS_WIDTH = 4 // Bits in the flag register.
)

// Flags is the device flag register.
type Flags struct {
	Equal     bool
	Greater   bool
	Carry     bool
	Underflow bool
}

// Clear resets all flags.
func (fl *Flags) Clear() {
	*fl = Flags{}
}

// Width returns the width of the register in bits.
func (fl *Flags) Width() int {
	return FLAGS_WIDTH
}

// Check evaluates a condition against the flags.
func (fl *Flags) Check(cond Cond) (ok bool, err error) {
	switch cond {
	case COND_ALWAYS:
		ok = true
	case COND_EQUAL:
		ok = fl.Equal
	case COND_NOT_EQUAL:
		ok = !fl.Equal
	case COND_GREATER:
		ok = fl.Greater
	case COND_GREATER_EQUAL:
		ok = fl.Equal || fl.Greater
	case COND_LESS:
		ok = !fl.Greater && !fl.Equal
	case COND_LESS_EQUAL:
		ok = !fl.Greater
	case COND_CARRY:
		ok = fl.Carry
	case COND_NO_CARRY:
		ok = !fl.Carry
	case COND_UNDERFLOW:
		ok = fl.Underflow
	case COND_NO_UNDERFLOW:
		ok = !fl.Underflow
	default:
		err = Domain(ErrCondInvalid)
	}
	return
}

// String returns the flags as EGCU, with '-' for clear flags.
func (fl Flags) String() string {
	out := []byte("----")
	if fl.Equal {
		out[0] = 'E'
	}
	if fl.Greater {
		out[1] = 'G'
	}
	if fl.Carry {
		out[2] = 'C'
	}
	if fl.Underflow {
		out[3] = 'U'
	}
	return string(out)
}
