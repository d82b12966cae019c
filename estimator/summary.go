package estimator

import (
	"fmt"
	"strings"
	"time"
)

// Summary renders the prediction as the sentence shown under the form.
func Summary(req Request, res Result) string {
	search := "No search was conducted"
	if req.SearchConducted {
		search = "A search was conducted"
	}
	drugs := "was not drug-related"
	if req.DrugsRelatedStop {
		drugs = "was drug-related"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A %d-year-old %s driver in %s was stopped at %s on %s. ",
		req.DriverAge, req.DriverGender, orUnknown(req.CountryName), clock(req.StopTime), orUnknown(req.StopDate))
	fmt.Fprintf(&b, "%s, and the stop %s.\n", search, drugs)
	fmt.Fprintf(&b, "Predicted Violation: %s\n", res.Violation)
	fmt.Fprintf(&b, "Predicted Stop Outcome: %s\n", res.Outcome)
	fmt.Fprintf(&b, "Stop Duration: %s\n", req.StopDuration)
	fmt.Fprintf(&b, "Vehicle Number: %s", orUnknown(req.VehicleNumber))
	return b.String()
}

var clockLayouts = []string{"15:04:05", "15:04"}

// clock formats a 24h time as 12h with AM/PM. Unparseable input is echoed.
func clock(s string) string {
	if s == "" {
		return "an unknown time"
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("03:04 PM")
		}
	}
	return s
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
