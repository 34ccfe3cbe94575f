package datagrid

import "strings"

// AggregateKind selects a footer aggregate for a column.
type AggregateKind string

const (
	AggregateNone  AggregateKind = ""
	AggregateSum   AggregateKind = "sum"
	AggregateAvg   AggregateKind = "avg"
	AggregateCount AggregateKind = "count"
	AggregateMin   AggregateKind = "min"
	AggregateMax   AggregateKind = "max"
)

// Total is a footer aggregate over the filtered rows of one column.
type Total struct {
	ColumnID string        `json:"column"`
	Kind     AggregateKind `json:"kind"`
	Value    float64       `json:"value"`
	Text     string        `json:"text"`
}

// Aggregate computes kind over the column's numeric values in records. COUNT
// counts non-nil values; the others skip values that are not numeric.
func Aggregate(records []Record, col Column, kind AggregateKind) float64 {
	kind = AggregateKind(strings.ToLower(string(kind)))
	var sum, lo, hi float64
	count := 0
	for _, r := range records {
		v := col.Value(r)
		if kind == AggregateCount {
			if v != nil {
				count++
			}
			continue
		}
		n, ok := toNumber(v)
		if !ok {
			continue
		}
		if count == 0 || n < lo {
			lo = n
		}
		if count == 0 || n > hi {
			hi = n
		}
		sum += n
		count++
	}

	switch kind {
	case AggregateSum:
		return sum
	case AggregateAvg:
		if count > 0 {
			return sum / float64(count)
		}
		return 0
	case AggregateCount:
		return float64(count)
	case AggregateMin:
		return lo
	case AggregateMax:
		return hi
	}
	return 0
}

func totals(records []Record, cols []Column) []Total {
	var out []Total
	for _, c := range cols {
		if c.Aggregate == AggregateNone {
			continue
		}
		v := Aggregate(records, c, c.Aggregate)
		t := Total{ColumnID: c.ID, Kind: c.Aggregate, Value: v}
		if c.Cell.Kind == CellAmount && c.Aggregate != AggregateCount {
			// currency_field is per-row; the footer only uses a fixed currency
			t.Text = renderAmount(v, Record{}, map[string]string{
				"currency": c.Cell.Params["currency"],
				"format":   c.Cell.Params["format"],
			})
		} else {
			t.Text = stringify(v)
		}
		out = append(out, t)
	}
	return out
}
