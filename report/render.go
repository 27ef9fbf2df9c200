package report

import (
	"fmt"
	"io"
	"strconv"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
)

// Render writes the report as a table.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "T = %d, mult/square ratio = %v, modulus = %d bits, memory bound = %d, security = %d bits\n",
		r.Work, r.Config.MultSquareRatio, r.Config.ModulusLength, r.Config.MemoryBound, r.Config.SecurityLevel)

	data := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		data = append(data, []string{
			row.Prover(),
			bytefmt.ByteSize(row.ProofSize),
			strconv.FormatUint(row.ProofSize, 10),
			strconv.FormatUint(row.Cost, 10),
			strconv.FormatFloat(row.Overhead, 'f', 4, 64) + "%",
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"prover", "proof size", "bytes", "cost", "overhead"})
	table.SetBorder(true)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.AppendBulk(data)
	table.Render()
}
