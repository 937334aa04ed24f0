package ssd1322

const (
	cmdSetColumnAddress     = 0x15
	cmdWriteRAM             = 0x5C
	cmdSetRowAddress        = 0x75
	cmdSetRemap             = 0xA0
	cmdSetStartLine         = 0xA1
	cmdSetDisplayOffset     = 0xA2
	cmdEntireDisplayOff     = 0xA4
	cmdNormalDisplay        = 0xA6
	cmdInverseDisplay       = 0xA7
	cmdExitPartialDisplay   = 0xA9
	cmdFunctionSelect       = 0xAB
	cmdSleepOn              = 0xAE
	cmdSleepOff             = 0xAF
	cmdSetPhaseLength       = 0xB1
	cmdSetClockDivider      = 0xB3
	cmdDisplayEnhancementA  = 0xB4
	cmdSetGPIO              = 0xB5
	cmdSetSecondPrecharge   = 0xB6
	cmdSetGrayTable         = 0xB8
	cmdSelectDefaultGray    = 0xB9
	cmdSetPrechargeVoltage  = 0xBB
	cmdSetVCOMH             = 0xBE
	cmdSetContrast          = 0xC1
	cmdMasterContrast       = 0xC7
	cmdSetMuxRatio          = 0xCA
	cmdDisplayEnhancementB  = 0xD1
	cmdSetCommandLock       = 0xFD
	commandLockUnlock       = 0x12
	functionInternalVDD     = 0x01
	functionExternalVDD     = 0x00
	remapDualCOM            = 0x11
	remapNibbleScanReversed = 0x14
	remapRotated            = 0x06
	remapCOMReversed        = 0x10
	remapCOMSplit           = 0x20
)

// GrayTable selects how gray levels map to pixel drive pulse widths.
type GrayTable uint8

const (
	// CustomGrayTable programs the 15-level gamma table in CustomGrayLevels.
	CustomGrayTable GrayTable = iota
	// DefaultGrayTable selects the controller's built-in linear table.
	DefaultGrayTable
)

func (g GrayTable) String() string {
	if g == DefaultGrayTable {
		return "default"
	}
	return "custom"
}

// CustomGrayLevels is the gamma table sent verbatim after the custom gray
// table command when CustomGrayTable is selected.
var CustomGrayLevels = [16]byte{
	0x00, 0x02, 0x08, 0x0D, 0x14, 0x1A, 0x20, 0x28,
	0x30, 0x38, 0x40, 0x48, 0x50, 0x60, 0x70, 0x00,
}

// regWrite is one command byte and its arguments.
type regWrite struct {
	cmd  byte
	data []byte
}

// remapArgs returns the two 0xA0 arguments for the given orientation and
// the COM options in opts. Both COM options live in the first byte; the
// second only carries the dual COM bit.
func remapArgs(rotated bool, opts *Opts) []byte {
	a := byte(remapNibbleScanReversed)
	if rotated {
		a = remapRotated
	}
	if opts.SwapTopBottom {
		a ^= remapCOMReversed
	}
	if opts.SplitCOM {
		a |= remapCOMSplit
	}
	return []byte{a, remapDualCOM}
}

// initSequence returns the register programming list sent after reset, in
// order. The list leaves the panel awake and in normal display mode.
func initSequence(opts *Opts) []regWrite {
	gray := regWrite{cmd: cmdSelectDefaultGray}
	if opts.GrayTable == CustomGrayTable {
		gray = regWrite{cmd: cmdSetGrayTable, data: CustomGrayLevels[:]}
	}
	return []regWrite{
		{cmdSetCommandLock, []byte{commandLockUnlock}},
		{cmdEntireDisplayOff, nil},
		{cmdSetClockDivider, []byte{0x91}}, // 80 fps
		{cmdSetMuxRatio, []byte{byte(opts.H - 1)}},
		{cmdSetDisplayOffset, []byte{0x00}},
		{cmdSetStartLine, []byte{0x00}},
		{cmdSetRemap, remapArgs(opts.Rotated, opts)},
		{cmdSetGPIO, []byte{0x00}}, // GPIO0/1 hi-Z
		{cmdFunctionSelect, []byte{functionInternalVDD}},
		{cmdDisplayEnhancementA, []byte{0xA0, 0xB5}}, // external VSL, normal
		{cmdSetContrast, []byte{opts.Contrast}},
		{cmdMasterContrast, []byte{0x0F}},
		gray,
		{cmdSetPhaseLength, []byte{0xE2}},
		{cmdDisplayEnhancementB, []byte{0xA2, 0x20}},
		{cmdSetPrechargeVoltage, []byte{0x1F}}, // 0.60*Vcc
		{cmdSetSecondPrecharge, []byte{0x08}},
		{cmdSetVCOMH, []byte{0x07}}, // 0.86*Vcc
		{cmdNormalDisplay, nil},
		{cmdExitPartialDisplay, nil},
		{cmdSleepOff, nil},
	}
}
