package indicator

// Params bundles the catalogue's periods. Zero values are replaced by
// the defaults from DefaultParams.
type Params struct {
	SMAPeriod       int
	EMAPeriod       int
	MACDFast        int
	MACDSlow        int
	MACDSignal      int
	RSIPeriod       int
	MFIPeriod       int
	ROCPeriod       int
	BBPeriod        int
	BBStdDev        float64
	ATRPeriod       int
	VolumeSMAPeriod int
}

// DefaultParams returns the conventional period set.
func DefaultParams() Params {
	return Params{
		SMAPeriod:       20,
		EMAPeriod:       20,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		RSIPeriod:       14,
		MFIPeriod:       14,
		ROCPeriod:       10,
		BBPeriod:        20,
		BBStdDev:        2,
		ATRPeriod:       14,
		VolumeSMAPeriod: 20,
	}
}

func (p Params) withDefaults() Params {
	def := DefaultParams()
	if p.SMAPeriod <= 0 {
		p.SMAPeriod = def.SMAPeriod
	}
	if p.EMAPeriod <= 0 {
		p.EMAPeriod = def.EMAPeriod
	}
	if p.MACDFast <= 0 {
		p.MACDFast = def.MACDFast
	}
	if p.MACDSlow <= 0 {
		p.MACDSlow = def.MACDSlow
	}
	if p.MACDSignal <= 0 {
		p.MACDSignal = def.MACDSignal
	}
	if p.RSIPeriod <= 0 {
		p.RSIPeriod = def.RSIPeriod
	}
	if p.MFIPeriod <= 0 {
		p.MFIPeriod = def.MFIPeriod
	}
	if p.ROCPeriod <= 0 {
		p.ROCPeriod = def.ROCPeriod
	}
	if p.BBPeriod <= 0 {
		p.BBPeriod = def.BBPeriod
	}
	if p.BBStdDev <= 0 {
		p.BBStdDev = def.BBStdDev
	}
	if p.ATRPeriod <= 0 {
		p.ATRPeriod = def.ATRPeriod
	}
	if p.VolumeSMAPeriod <= 0 {
		p.VolumeSMAPeriod = def.VolumeSMAPeriod
	}
	return p
}

// SnapshotEntry is one indicator's most recent defined value and signal.
type SnapshotEntry struct {
	Name   string
	Value  float64
	Signal int
}

// Snapshot computes the whole catalogue and reports each indicator's
// latest defined value. Indicators whose required columns are missing,
// or that have no defined row yet, are skipped rather than failing the
// rest of the catalogue.
func (e *Engine) Snapshot(p Params) []SnapshotEntry {
	p = p.withDefaults()

	var entries []SnapshotEntry
	add := func(r Result, err error) {
		if err != nil {
			return
		}
		if v, sig, ok := r.Last(); ok {
			entries = append(entries, SnapshotEntry{Name: r.Name, Value: v, Signal: sig})
		}
	}

	add(e.SMA(p.SMAPeriod))
	add(e.EMA(p.EMAPeriod))

	if macd, err := e.MACD(p.MACDFast, p.MACDSlow, p.MACDSignal); err == nil {
		r := Result{Name: "MACD", Values: macd.Line, Signal: macd.Signal}
		if v, sig, ok := r.Last(); ok {
			entries = append(entries, SnapshotEntry{Name: r.Name, Value: v, Signal: sig})
		}
	}

	add(e.RSI(p.RSIPeriod))
	add(e.MFI(p.MFIPeriod))
	add(e.ROC(p.ROCPeriod))

	if bb, err := e.BollingerBands(p.BBPeriod, p.BBStdDev); err == nil {
		r := Result{Name: "BB_middle", Values: bb.Middle, Signal: bb.Signal}
		if v, sig, ok := r.Last(); ok {
			entries = append(entries, SnapshotEntry{Name: r.Name, Value: v, Signal: sig})
		}
	}

	add(e.ATR(p.ATRPeriod))
	add(e.OBV())
	add(e.VolumeSMA(p.VolumeSMAPeriod))

	return entries
}
