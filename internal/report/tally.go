package report

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TallyEntry holds the running totals accumulated for one product name.
type TallyEntry struct {
	Qty     int
	Profit  decimal.Decimal
	Revenue decimal.Decimal
}

// Tally is an ordered name → running-totals accumulator. Names keep the order
// of first insertion, so per-product summaries come out deterministic for a
// given input sequence.
type Tally struct {
	names   []string
	entries map[string]*TallyEntry
}

func NewTally() *Tally {
	return &Tally{entries: make(map[string]*TallyEntry)}
}

// Add inserts the name if absent, then accumulates onto its entry.
func (t *Tally) Add(name string, qty int, profit, revenue decimal.Decimal) {
	e, ok := t.entries[name]
	if !ok {
		e = &TallyEntry{}
		t.entries[name] = e
		t.names = append(t.names, name)
	}
	e.Qty += qty
	e.Profit = e.Profit.Add(profit)
	e.Revenue = e.Revenue.Add(revenue)
}

// Names returns the accumulated names in first-insertion order.
func (t *Tally) Names() []string { return t.names }

func (t *Tally) Len() int { return len(t.names) }

func (t *Tally) Get(name string) (TallyEntry, bool) {
	e, ok := t.entries[name]
	if !ok {
		return TallyEntry{}, false
	}
	return *e, true
}

// tallyEntryJSON is the artifact shape of one entry. Money fields leave as
// bare numbers rounded to two decimals.
type tallyEntryJSON struct {
	Qty     int     `json:"qty"`
	Profit  float64 `json:"profit"`
	Revenue float64 `json:"revenue"`
}

// MarshalJSON emits a JSON object whose keys appear in insertion order.
func (t *Tally) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range t.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		e := t.entries[name]
		val, err := json.Marshal(tallyEntryJSON{
			Qty:     e.Qty,
			Profit:  round2(e.Profit),
			Revenue: round2(e.Revenue),
		})
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores entries from an artifact. Insertion order is not
// recoverable from a JSON object and is not required to be stable across runs.
func (t *Tally) UnmarshalJSON(data []byte) error {
	var raw map[string]tallyEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.names = nil
	t.entries = make(map[string]*TallyEntry, len(raw))
	for name, e := range raw {
		t.Add(name, e.Qty, decimal.NewFromFloat(e.Profit), decimal.NewFromFloat(e.Revenue))
	}
	return nil
}

// round2 converts to the two-decimal float form used in artifacts and
// API payloads.
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
