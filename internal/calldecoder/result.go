package calldecoder

// Result is the outcome of matching a call payload against a Registry.
// It is either Decoded or Unsupported.
type Result interface {
	isResult()
}

// Argument is one decoded input of a method call.
type Argument struct {
	Name        string // Input name as declared in the ABI
	Type        string // Canonical ABI type (e.g. "uint256", "address[]")
	Value       any    // Go value produced by the ABI unpacker (*big.Int, common.Address, ...)
	Highlighted bool   // Whether the signature marks this input for reporting
}

// Decoded is a payload that fully matched one signature.
type Decoded struct {
	Method   string     // Method name
	Selector string     // 0x-prefixed 4-byte selector
	Args     []Argument // Inputs in declaration order
}

// Arg returns the argument named name.
func (d Decoded) Arg(name string) (Argument, bool) {
	for _, arg := range d.Args {
		if arg.Name == name {
			return arg, true
		}
	}

	return Argument{}, false
}

// Highlighted returns the highlighted arguments in declaration order.
func (d Decoded) Highlighted() []Argument {
	args := make([]Argument, 0, len(d.Args))
	for _, arg := range d.Args {
		if arg.Highlighted {
			args = append(args, arg)
		}
	}

	return args
}

// Unsupported is a payload no registered signature could decode.
// Reason joins the error of every attempt.
type Unsupported struct {
	Reason error
}

func (Decoded) isResult()     {}
func (Unsupported) isResult() {}
