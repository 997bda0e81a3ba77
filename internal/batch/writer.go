package batch

import (
	"encoding/json"
	"io"

	"github.com/baditaflorin/go_flames/internal/core/domain"
)

// recordJSON is one line of JSON Lines output.
type recordJSON struct {
	Line             int               `json:"line"`
	Name1            string            `json:"name1"`
	Name2            string            `json:"name2"`
	Result           string            `json:"result,omitempty"`
	ResultType       string            `json:"result_type,omitempty"`
	Count            *int              `json:"count,omitempty"`
	EliminationOrder []domain.Category `json:"elimination_order,omitempty"`
	Error            string            `json:"error,omitempty"`
}

// JSONLines returns an emit function that writes one JSON object per record.
func JSONLines(w io.Writer) func(Record) error {
	enc := json.NewEncoder(w)
	return func(rec Record) error {
		out := recordJSON{
			Line:  rec.Line,
			Name1: rec.Name1,
			Name2: rec.Name2,
		}
		if rec.Err != nil {
			out.Error = rec.Err.Error()
		} else {
			count := rec.Result.Count
			out.Result = rec.Result.Meaning
			out.ResultType = string(rec.Result.Type)
			out.Count = &count
			out.EliminationOrder = rec.Result.EliminationOrder
		}
		return enc.Encode(out)
	}
}
