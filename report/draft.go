// Package report implements the citizen report submission workflow: a draft
// composed by the user, pluggable location and photo acquisition, and a
// guarded multipart submission.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"afiliado/api"
)

// DepartmentOption is one entry of the department picker, fetched per screen
// activation and never cached across screens.
type DepartmentOption struct {
	Value string
	Label string
}

// DepartmentOptions maps the wire records to picker options.
func DepartmentOptions(records []api.DepartmentRecord) []DepartmentOption {
	options := make([]DepartmentOption, 0, len(records))
	for _, r := range records {
		options = append(options, DepartmentOption{
			Value: strconv.FormatInt(r.ID, 10),
			Label: r.Name,
		})
	}
	return options
}

// Location is a coordinate pair, however it was acquired.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Draft is an in-progress report. It is created empty when the form opens,
// cleared on a successful submission and kept as-is on a failed one so the
// user can correct and resubmit.
type Draft struct {
	Title        string
	Description  string
	DepartmentID string
	PhotoPath    string // optional
	Location     *Location
}

func (d *Draft) Reset() {
	*d = Draft{}
}

// ValidationError lists the required fields a draft is missing. It is raised
// before any network activity.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// validate enforces the submittability invariant: title, description, a
// department among the loaded options, and a location. The photo is optional.
func (d *Draft) validate(departments []DepartmentOption) error {
	var missing []string
	if d.Title == "" {
		missing = append(missing, "title")
	}
	if d.Description == "" {
		missing = append(missing, "description")
	}
	if d.DepartmentID == "" || !knownDepartment(d.DepartmentID, departments) {
		missing = append(missing, "department")
	}
	if d.Location == nil {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func knownDepartment(id string, departments []DepartmentOption) bool {
	for _, dep := range departments {
		if dep.Value == id {
			return true
		}
	}
	return false
}
