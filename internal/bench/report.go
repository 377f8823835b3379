package bench

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sugawarayuuta/sonnet"
)

// Output formats.
const (
	FormatText  = "text"
	FormatGraph = "graph"
	FormatJSON  = "json"
)

// ErrUnknownFormat is returned by Write for an unsupported format.
var ErrUnknownFormat = errors.New("bench: unknown output format")

// Formats returns the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatGraph, FormatJSON}
}

// ValidFormat reports whether format is supported.
func ValidFormat(format string) bool {
	for _, f := range Formats() {
		if f == format {
			return true
		}
	}
	return false
}

// Write renders rep to w in the given format.
func Write(w io.Writer, rep Report, format string) error {
	switch format {
	case FormatText:
		return WriteText(w, rep)
	case FormatGraph:
		return WriteGraph(w, rep)
	case FormatJSON:
		return WriteJSON(w, rep)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// WriteText prints an aligned table, one row per variant and thread count.
func WriteText(w io.Writer, rep Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "variant\tthreads\tmean ms\tper-thread ms\tops/sec\tempty\t\n")
	for _, res := range rep.Results {
		for _, tr := range res.Threads {
			fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.0f\t%d\t\n",
				res.Variant, tr.Threads, tr.MeanMillis, tr.PerThreadMillis, tr.OpsPerSec, tr.Empty)
		}
	}
	return tw.Flush()
}

// WriteGraph prints the per-thread timings in the line format read by the
// plotting script.
func WriteGraph(w io.Writer, rep Report) error {
	for _, res := range rep.Results {
		if _, err := fmt.Fprintf(w, "Execution time per thread for the %s:\n", res.Variant); err != nil {
			return err
		}
		for _, tr := range res.Threads {
			if _, err := fmt.Fprintf(w, "Threads: %2d | Milliseconds: %f\n", tr.Threads, tr.PerThreadMillis); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON encodes rep as a single JSON document followed by a newline.
func WriteJSON(w io.Writer, rep Report) error {
	data, err := sonnet.Marshal(rep)
	if err != nil {
		return fmt.Errorf("bench: encoding report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ReadJSON decodes a report written by WriteJSON.
func ReadJSON(data []byte) (Report, error) {
	var rep Report
	if err := sonnet.Unmarshal(data, &rep); err != nil {
		return Report{}, fmt.Errorf("bench: decoding report: %w", err)
	}
	return rep, nil
}
