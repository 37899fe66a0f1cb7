package library

import domain "github.com/YaRavva/Fiction-Library-sub007/internal/domain/library"

type RowOutput struct {
	ID         string            `json:"id"`
	SourceRef  string            `json:"source_ref,omitempty"`
	Value      *string           `json:"value"`
	Status     string            `json:"status,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func NewRowOutputs(rows []domain.WorkItem) []RowOutput {
	out := make([]RowOutput, 0, len(rows))
	for _, row := range rows {
		out = append(out, RowOutput{
			ID:         row.ID,
			SourceRef:  row.SourceRef,
			Value:      row.Value,
			Status:     row.Status,
			Attributes: row.Attributes,
		})
	}
	return out
}
