package export

import (
	"bytes"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/Isakrulander/sheetgrid/pkg/sgerrors"
	"github.com/Isakrulander/sheetgrid/pkg/table"
)

// ArrowIPC renders the table as an Arrow IPC file buffer. Numeric columns
// map to float64, temporal columns to microsecond timestamps, text
// columns to utf8; nulls are preserved in the validity bitmap.
func ArrowIPC(t *table.Table) ([]byte, error) {
	if t == nil {
		return nil, sgerrors.New(sgerrors.ErrorTypeInvalidInput, "table is nil")
	}

	columns := t.Columns()
	fields := make([]arrow.Field, len(columns))
	for j, col := range columns {
		fields[j] = arrow.Field{
			Name:     col.Name(),
			Type:     arrowType(col.Kind()),
			Nullable: true,
		}
	}
	schema := arrow.NewSchema(fields, nil)

	pool := memory.NewGoAllocator()
	builder := array.NewRecordBuilder(pool, schema)
	defer builder.Release()

	for j, col := range columns {
		if err := appendColumn(builder.Field(j), col); err != nil {
			return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "failed to build arrow column").
				WithDetail("column", col.Name())
		}
	}

	rec := builder.NewRecord()
	defer rec.Release()

	var buf bytes.Buffer
	w, err := ipc.NewFileWriter(&buf, ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "failed to create arrow writer")
	}
	if err := w.Write(rec); err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "failed to write record batch")
	}
	if err := w.Close(); err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "failed to close arrow writer")
	}

	return buf.Bytes(), nil
}

// arrowType maps a column kind to its Arrow data type.
func arrowType(kind table.Kind) arrow.DataType {
	switch kind {
	case table.KindNumeric:
		return arrow.PrimitiveTypes.Float64
	case table.KindTemporal:
		return arrow.FixedWidthTypes.Timestamp_us
	default:
		return arrow.BinaryTypes.String
	}
}

// appendColumn copies one table column into an Arrow array builder.
func appendColumn(b array.Builder, col *table.Column) error {
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			b.AppendNull()
			continue
		}
		switch builder := b.(type) {
		case *array.Float64Builder:
			v, _ := col.Float(i)
			builder.Append(v)
		case *array.TimestampBuilder:
			v, _ := col.Time(i)
			builder.Append(arrow.Timestamp(v.UnixMicro()))
		case *array.StringBuilder:
			v, _ := col.Text(i)
			builder.Append(v)
		default:
			return sgerrors.Newf(sgerrors.ErrorTypeInternal, "unsupported arrow builder %T", b)
		}
	}
	return nil
}
