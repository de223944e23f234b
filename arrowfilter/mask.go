package arrowfilter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow-go/v18/arrow/extensions"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/autofilter-go/filter"
)

// ErrUnsupportedColumn indicates a column whose Arrow type has no comparable value form.
var ErrUnsupportedColumn = errors.New("unsupported column type")

// Options configures record evaluation.
type Options struct {
	// Allocator for the mask and filtered columns.
	// OPTIONAL: Uses memory.DefaultAllocator if nil.
	Allocator memory.Allocator

	// Logger for evaluation diagnostics.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger
}

func (o *Options) allocator() memory.Allocator {
	if o == nil || o.Allocator == nil {
		return memory.DefaultAllocator
	}
	return o.Allocator
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Mask evaluates the predicate for every row of rec and returns one boolean
// per row. The caller must release the returned array.
//
// The predicate must compare a column, unwrapped or not, with a constant.
// Columns are resolved by property name against the record schema. A NULL
// cell never selects its row.
func Mask(expr filter.Expression, rec arrow.Record, opts *Options) (*array.Boolean, error) {
	c, ok := expr.(*filter.ComparisonExpression)
	if !ok {
		if _, empty := expr.(*filter.EmptyExpression); empty {
			return nil, filter.ErrEmptyExpression
		}
		return nil, fmt.Errorf("%w: %s", filter.ErrUnsupportedExpression, className(expr))
	}
	op, ok := c.Operator()
	if !ok {
		return nil, fmt.Errorf("%w: comparison type %s", filter.ErrUnsupportedExpression, c.Type())
	}

	prop, err := columnProperty(c.Left)
	if err != nil {
		return nil, err
	}
	constant, ok := c.Right.(*filter.ConstantExpression)
	if !ok {
		return nil, fmt.Errorf("%w: right operand %s", filter.ErrUnsupportedExpression, className(c.Right))
	}

	resolved, err := NewSchema("", rec.Schema()).Property(prop.Name)
	if err != nil {
		return nil, err
	}
	col := rec.Column(resolved.Index[0])

	var right any
	if !constant.Value.IsNull {
		right = constant.Value.Data
	}

	bldr := array.NewBooleanBuilder(opts.allocator())
	defer bldr.Release()
	bldr.Reserve(int(rec.NumRows()))

	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			bldr.UnsafeAppend(false)
			continue
		}
		left, err := cellValue(col, i)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", resolved.Name, err)
		}
		selected, err := filter.Compare(op, left, right)
		if err != nil {
			return nil, fmt.Errorf("column %s row %d: %w", resolved.Name, i, err)
		}
		bldr.UnsafeAppend(selected)
	}

	opts.logger().Debug("Predicate mask computed",
		"predicate", filter.Format(expr),
		"rows", col.Len())

	return bldr.NewBooleanArray(), nil
}

// Filter returns the rows of rec selected by the predicate.
// The caller must release the returned record.
func Filter(ctx context.Context, expr filter.Expression, rec arrow.Record, opts *Options) (arrow.Record, error) {
	mask, err := Mask(expr, rec, opts)
	if err != nil {
		return nil, err
	}
	defer mask.Release()

	ctx = compute.WithAllocator(ctx, opts.allocator())
	out, err := compute.FilterRecordBatch(ctx, rec, mask, compute.DefaultFilterOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to filter record: %w", err)
	}
	return out, nil
}

func columnProperty(expr filter.Expression) (filter.Property, error) {
	switch ex := expr.(type) {
	case *filter.PropertyExpression:
		return ex.Property, nil
	case *filter.UnwrapExpression:
		return columnProperty(ex.Child)
	}
	return filter.Property{}, fmt.Errorf("%w: left operand %s", filter.ErrUnsupportedExpression, className(expr))
}

func className(expr filter.Expression) string {
	if expr == nil {
		return "nil"
	}
	return string(expr.Class())
}

// cellValue reads row i of arr in the canonical value form used by filter.Compare.
func cellValue(arr arrow.Array, i int) (any, error) {
	switch a := arr.(type) {
	case *array.Boolean:
		return a.Value(i), nil
	case *array.Int8:
		return int64(a.Value(i)), nil
	case *array.Int16:
		return int64(a.Value(i)), nil
	case *array.Int32:
		return int64(a.Value(i)), nil
	case *array.Int64:
		return a.Value(i), nil
	case *array.Uint8:
		return uint64(a.Value(i)), nil
	case *array.Uint16:
		return uint64(a.Value(i)), nil
	case *array.Uint32:
		return uint64(a.Value(i)), nil
	case *array.Uint64:
		return a.Value(i), nil
	case *array.Float32:
		return float64(a.Value(i)), nil
	case *array.Float64:
		return a.Value(i), nil
	case *array.String:
		return a.Value(i), nil
	case *array.LargeString:
		return a.Value(i), nil
	case *array.StringView:
		return a.Value(i), nil
	case *array.Binary:
		return a.Value(i), nil
	case *array.LargeBinary:
		return a.Value(i), nil
	case *array.BinaryView:
		return a.Value(i), nil
	case *extensions.UUIDArray:
		return a.Value(i), nil
	case *array.FixedSizeBinary:
		return a.Value(i), nil
	case *array.Date32:
		return a.Value(i).ToTime(), nil
	case *array.Date64:
		return a.Value(i).ToTime(), nil
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit), nil
	case *array.Duration:
		unit := a.DataType().(*arrow.DurationType).Unit
		return time.Duration(a.Value(i)) * unit.Multiplier(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedColumn, arr.DataType())
}
