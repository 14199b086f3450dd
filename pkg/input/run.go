package input

import (
	"bufio"
	"io"
	"strconv"

	"table_merge/pkg/merge"
)

// Run applies every request of p in order and writes the running maximum
// group weight after each one, one value per line.
func Run(p *Problem, w io.Writer) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m := merge.NewMerger(p.Weights)
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 24)
	for _, r := range p.Requests {
		buf = strconv.AppendInt(buf[:0], m.Merge(r.Destination, r.Source), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
