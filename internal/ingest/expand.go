package ingest

import "github.com/trackerlens/trackerlens/internal/model"

// Expand fans one domain's scalar tuple out into its FlatRows.
//
// The cardinality is max(1, len(categories)): a domain with no category tags
// yields exactly one row carrying the model.Uncategorized sentinel, and a
// domain with N tags yields N rows in source order that copy the scalars
// verbatim and differ only in Category. Nothing but the category list drives
// the fan-out.
func Expand(scalars model.DomainScalars, categories []string) []model.FlatRow {
	if len(categories) == 0 {
		return []model.FlatRow{{DomainScalars: scalars, Category: model.Uncategorized}}
	}

	rows := make([]model.FlatRow, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, model.FlatRow{DomainScalars: scalars, Category: category})
	}
	return rows
}

// ExpandRecord is a convenience composing Normalize and Expand for one
// parsed record.
func ExpandRecord(record *model.DomainRecord) []model.FlatRow {
	return Expand(Normalize(record), record.Categories)
}
