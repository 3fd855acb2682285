// Package join provides a two-input hash join Stage. The right input is the build side:
// it is pulled in full and indexed in memory before the left (probe) input is streamed.
// Output is ordered by left Row arrival and then by right Row arrival within each key.
// Join keys follow SQL null semantics: a key containing a null never matches anything.
package join

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-sif/etl"
	"github.com/go-sif/etl/errors"
	"github.com/go-sif/etl/internal/iterator"
	iutil "github.com/go-sif/etl/internal/util"
	"github.com/samber/lo"
)

// Mode determines what happens to left Rows without a match
type Mode int

const (
	// Inner joins drop left Rows which have no match
	Inner Mode = iota
	// LeftOuter joins emit exactly one Row, merged with an absent right Row, for each left Row without a match
	LeftOuter
)

// String returns the name of this Mode
func (m Mode) String() string {
	switch m {
	case Inner:
		return "inner"
	case LeftOuter:
		return "left-outer"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode translates the name of a Mode back into a Mode
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "inner":
		return Inner, nil
	case "left-outer", "left", "leftouter":
		return LeftOuter, nil
	default:
		return Inner, fmt.Errorf("Unknown join mode %s", name)
	}
}

// Condition pairs a field of the left Row with a field of the right Row which must be equal
type Condition struct {
	Left  string
	Right string
}

// On is shorthand for building a Condition
func On(left string, right string) Condition {
	return Condition{Left: left, Right: right}
}

// Conf configures a join Stage
type Conf struct {
	Name       string             // The name of the Stage, used in logs and errors. Defaults to "join".
	Left       etl.Stage          // The probe side. If nil, the join's own input is the probe side.
	Right      etl.Stage          // The build side, which must fit in memory. Required.
	Conditions []Condition        // Equality conditions, all of which must hold for Rows to match. Required.
	Mode       Mode               // Inner or LeftOuter. Defaults to Inner.
	Merge      etl.MergeOperation // Combines matched Rows. Resolving colliding field names is up to Merge. Required.
	Logger     *slog.Logger       // Defaults to slog.Default()
}

type joinStage struct {
	conf        *Conf
	leftFields  []string
	rightFields []string
	merge       etl.MergeOperation
	logger      *slog.Logger
}

// Create returns a hash join Stage, validating its configuration
func Create(conf *Conf) (etl.Stage, error) {
	if conf == nil {
		return nil, errors.ConfigError{Component: "join", Reason: "no configuration"}
	}
	if conf.Name == "" {
		conf.Name = "join"
	}
	fail := func(reason string) (etl.Stage, error) {
		return nil, errors.ConfigError{Component: conf.Name, Reason: reason}
	}
	if conf.Right == nil {
		return fail("a right (build side) Stage is required")
	}
	if conf.Merge == nil {
		return fail("a merge operation is required")
	}
	if len(conf.Conditions) == 0 {
		return fail("at least one join condition is required")
	}
	if conf.Mode != Inner && conf.Mode != LeftOuter {
		return fail(fmt.Sprintf("unsupported join mode %s", conf.Mode))
	}
	leftFields := lo.Map(conf.Conditions, func(c Condition, _ int) string { return c.Left })
	rightFields := lo.Map(conf.Conditions, func(c Condition, _ int) string { return c.Right })
	if lo.Contains(leftFields, "") || lo.Contains(rightFields, "") {
		return fail("join conditions cannot contain empty field names")
	}
	if conf.Logger == nil {
		conf.Logger = slog.Default()
	}
	return &joinStage{
		conf:        conf,
		leftFields:  leftFields,
		rightFields: rightFields,
		merge:       iutil.SafeMergeOperation(conf.Merge),
		logger:      conf.Logger.With("stage", conf.Name),
	}, nil
}

// Name returns the name of this Stage
func (s *joinStage) Name() string {
	return s.conf.Name
}

// Execute wires both sides of the join. Nothing is pulled from either side until the result is pulled.
func (s *joinStage) Execute(ctx context.Context, input etl.RowIterator) (etl.RowIterator, error) {
	if input == nil {
		input = iterator.Empty()
	}
	var left etl.RowIterator
	if s.conf.Left == nil {
		left = input
		input = nil
	} else {
		out, err := s.conf.Left.Execute(ctx, iterator.Empty())
		if err != nil {
			return nil, iterator.Attribute(s.conf.Left.Name(), -1, err)
		}
		left = iterator.Attributed(out, s.conf.Left.Name(), -1)
	}
	out, err := s.conf.Right.Execute(ctx, iterator.Empty())
	if err != nil {
		closeErr := iterator.CloseAll(left, input)
		if closeErr != nil {
			s.logger.Warn("failed to release join inputs", "error", closeErr)
		}
		return nil, iterator.Attribute(s.conf.Right.Name(), -1, err)
	}
	right := iterator.Attributed(out, s.conf.Right.Name(), -1)
	return &joinIterator{
		ctx:           ctx,
		stage:         s,
		input:         input,
		left:          left,
		right:         right,
		leftProjector: createKeyProjector(s.leftFields),
	}, nil
}
