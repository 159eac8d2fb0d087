package domain

// Patient is a single member row of a group
type Patient struct {
	Code string // identity shown in the row, e.g. "2-3"
}

// GroupSpec is the construction-time description of one group
type GroupSpec struct {
	Title   string
	Members []Patient // order is preserved as given
}

// PatientCodes returns the codes of the given patients in order
func PatientCodes(patients []Patient) []string {
	codes := make([]string, len(patients))
	for i, p := range patients {
		codes[i] = p.Code
	}
	return codes
}
