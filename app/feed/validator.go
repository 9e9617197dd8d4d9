package feed

import (
	"time"

	"github.com/sitecast/sitecast/app/content"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Run decides whether a previous generation can be reused verbatim. It is
// a pure function: no side effects, the cache is never touched.
//
// A missing record or missing last-generation timestamp is always a miss.
// Otherwise the stored config must equal the current one, the stored item
// count must match, and no selected item may have been modified after the
// last generation.
func (v *Validator) Run(record *CacheRecord, config Config, items []content.Item, lastGenerated *time.Time) bool {
	if record == nil || lastGenerated == nil {
		return false
	}

	if record.Config != config {
		return false
	}

	if record.ItemCount != len(items) {
		return false
	}

	for _, item := range items {
		if item.LastModified.After(*lastGenerated) {
			return false
		}
	}

	return true
}
