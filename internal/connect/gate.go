package connect

// GateResult summarizes whether the operator may proceed past the
// credential checklist. Derived from the current row list on every change,
// never cached across resolutions.
type GateResult struct {
	AllRequiredMet    bool `json:"all_required_met"`
	RequiredTotal     int  `json:"required_total"`
	RequiredConnected int  `json:"required_connected"`
	ConnectedTotal    int  `json:"connected_total"`
	RowTotal          int  `json:"row_total"`
}

// Evaluate computes the gate over a row list. Vacuously true when no row
// is required.
func Evaluate(rows []Row) GateResult {
	result := GateResult{RowTotal: len(rows)}
	for _, row := range rows {
		if row.Connected {
			result.ConnectedTotal++
		}
		if row.Required {
			result.RequiredTotal++
			if row.Connected {
				result.RequiredConnected++
			}
		}
	}
	result.AllRequiredMet = result.RequiredConnected == result.RequiredTotal
	return result
}
