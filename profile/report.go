package profile

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

var reportHeader = []string{
	"Profile",
	"Probe",
	"Input Length",
	"Inputs Used",
	"Flags",
	"Execution",
	"Memory Used",
	"Ticks",
}

// row returns the report columns of a sample.
func (s *Sample) row() []string {
	return []string{
		s.Profile,
		fmt.Sprintf("%#x", s.Probe),
		strconv.Itoa(s.InputLength()),
		strconv.Itoa(s.Footprint.Inputs),
		strconv.Itoa(s.Footprint.Flags),
		strconv.Itoa(s.Footprint.Execution),
		strconv.Itoa(s.MemoryUsed()),
		strconv.Itoa(s.Ticks),
	}
}

// Report writes the samples as a table.
func Report(w io.Writer, samples []Sample) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(reportHeader)
	for n := range samples {
		table.Append(samples[n].row())
	}
	table.Render()
}
