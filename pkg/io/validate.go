package io

import (
	"github.com/pagegrid/pagegrid/pkg/errors"
	"github.com/pagegrid/pagegrid/pkg/layout"
	"github.com/pagegrid/pagegrid/pkg/widget"
)

// Validate checks a layout document against the package's validation rules
// and returns nil if the document may be adopted by an engine. See the
// package documentation for the full rule list.
func Validate(doc layout.Document) error {
	if doc.Version != layout.Version {
		return errors.New(errors.ErrCodeUnsupportedVersion,
			"unsupported layout version %q (want %q)", doc.Version, layout.Version)
	}

	if err := doc.Grid.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGrid, err, "grid config")
	}
	for _, bp := range doc.Grid.Breakpoints {
		if err := errors.ValidateBreakpointName(bp.Name); err != nil {
			return err
		}
	}

	if len(doc.Widgets) > layout.MaxRootWidgets {
		return errors.New(errors.ErrCodeTooManyWidgets,
			"%d root widgets exceeds the cap of %d", len(doc.Widgets), layout.MaxRootWidgets)
	}

	seen := make(map[string]struct{})
	for _, w := range widget.Flatten(doc.Widgets) {
		if err := errors.ValidateWidgetID(w.ID); err != nil {
			return err
		}
		if _, dup := seen[w.ID]; dup {
			return errors.New(errors.ErrCodeDuplicateWidgetID, "duplicate widget id %q", w.ID)
		}
		seen[w.ID] = struct{}{}

		if err := errors.ValidateWidgetType(w.Type); err != nil {
			return err
		}

		p := w.Position
		if p.X < 0 || p.Y < 0 || p.Width < 1 || p.Height < 1 {
			return errors.New(errors.ErrCodeInvalidPosition,
				"widget %q has malformed position (x=%d y=%d w=%d h=%d)", w.ID, p.X, p.Y, p.Width, p.Height)
		}
		for _, r := range p.Responsive {
			if err := errors.ValidateBreakpointName(r.Breakpoint); err != nil {
				return err
			}
			if r.X < 0 || r.Y < 0 || r.Width < 1 || r.Height < 1 {
				return errors.New(errors.ErrCodeInvalidPosition,
					"widget %q has malformed %s override", w.ID, r.Breakpoint)
			}
		}
	}

	return nil
}
