package tracing

import (
	"context"

	"github.com/Pallavi2687/cpu-scheduler-frontend/datarecording"
)

// TraceQuery selects recorded rows.
type TraceQuery struct {
	// Generation keeps the rows of one Start call. 0 keeps all of them.
	Generation uint64

	// Limit is the maximum number of rows returned. 0 means no limit.
	Limit int

	// Offset is the number of rows skipped.
	Offset int
}

func (q TraceQuery) params(orderBy string) datarecording.QueryParams {
	p := datarecording.QueryParams{
		OrderBy: orderBy,
		Limit:   q.Limit,
		Offset:  q.Offset,
	}

	if q.Generation != 0 {
		p.Where = "Generation = ?"
		p.Args = []any{q.Generation}
	}

	return p
}

// TraceReader reads what a PlaybackTracer recorded.
type TraceReader struct {
	reader datarecording.DataReader
}

// NewTraceReader wraps a DataReader and maps the tracer tables on it.
func NewTraceReader(reader datarecording.DataReader) *TraceReader {
	reader.MapTable(TraceTable, TraceEntry{})
	reader.MapTable(BlockTable, BlockEntry{})

	return &TraceReader{reader: reader}
}

// OpenTraceReader opens a trace database file.
func OpenTraceReader(filename string) (*TraceReader, error) {
	reader, err := datarecording.NewReader(filename)
	if err != nil {
		return nil, err
	}

	return NewTraceReader(reader), nil
}

// ListBlocks returns the completed blocks in the order they were played, and
// the number of blocks matching q without Limit and Offset.
func (r *TraceReader) ListBlocks(
	ctx context.Context,
	q TraceQuery,
) ([]BlockEntry, int, error) {
	results, total, err := r.reader.Query(ctx, BlockTable,
		q.params("Generation, StartTime, \"Index\""))
	if err != nil {
		return nil, 0, err
	}

	blocks := make([]BlockEntry, 0, len(results))
	for _, res := range results {
		blocks = append(blocks, *res.(*BlockEntry))
	}

	return blocks, total, nil
}

// ListEvents returns the recorded notifications in time order, and the
// number of notifications matching q without Limit and Offset.
func (r *TraceReader) ListEvents(
	ctx context.Context,
	q TraceQuery,
) ([]TraceEntry, int, error) {
	results, total, err := r.reader.Query(ctx, TraceTable,
		q.params("Generation, Time, rowid"))
	if err != nil {
		return nil, 0, err
	}

	events := make([]TraceEntry, 0, len(results))
	for _, res := range results {
		events = append(events, *res.(*TraceEntry))
	}

	return events, total, nil
}

// Close closes the underlying reader.
func (r *TraceReader) Close() error {
	return r.reader.Close()
}
