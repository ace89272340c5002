package query

import (
	"encoding/json"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/vegasq/logq/internal/record"
)

// Source produces the records of one input, read fresh on every call.
type Source interface {
	Name() string
	Read() ([]record.Record, error)
}

// Sink persists matched records. Append receives each execution's matches
// as a single batch.
type Sink interface {
	Append(records []record.Record) error
}

// PoolPolicy decides which scanned sources take part in filtering.
type PoolPolicy int

const (
	// PoolIncremental pools a source only if every query column has been
	// seen once that source is scanned. Sources scanned earlier are left out.
	PoolIncremental PoolPolicy = iota

	// PoolAll pools every source once the whole scan has seen every
	// query column.
	PoolAll
)

// String returns the config name of the policy.
func (p PoolPolicy) String() string {
	if p == PoolAll {
		return "all"
	}
	return "incremental"
}

// ParsePoolPolicy maps a config name to a policy.
func ParsePoolPolicy(name string) (PoolPolicy, error) {
	switch name {
	case "", "incremental":
		return PoolIncremental, nil
	case "all":
		return PoolAll, nil
	}
	return PoolIncremental, fmt.Errorf("unknown pooling policy %q (want incremental or all)", name)
}

// Result is the outcome of one execution.
type Result struct {
	Count          int
	DuplicateCount int
	Records        []record.Record
}

// Engine runs queries over record sources. It keeps no state between
// executions.
type Engine struct {
	sink    Sink
	dedupe  bool
	pooling PoolPolicy
	log     logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithDedupe drops matches whose serialized content repeats an earlier match.
func WithDedupe(dedupe bool) Option {
	return func(e *Engine) { e.dedupe = dedupe }
}

// WithPooling sets the pooling policy.
func WithPooling(p PoolPolicy) Option {
	return func(e *Engine) { e.pooling = p }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an engine. A nil sink disables persistence.
func NewEngine(sink Sink, opts ...Option) *Engine {
	e := &Engine{
		sink: sink,
		log:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute parses queryText and runs it over sources.
func (e *Engine) Execute(sources []Source, queryText string) (*Result, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no sources provided", ErrInvalidInput)
	}

	q, err := Parse(queryText)
	if err != nil {
		return nil, err
	}

	return e.Run(sources, q)
}

// Run executes a parsed query: it checks that every query column exists
// in the scanned sources, filters the pooled records, hands the matches to
// the sink and returns them. Errors from sources and the sink are returned
// as they are; nothing is returned alongside an error.
func (e *Engine) Run(sources []Source, q *Query) (*Result, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no sources provided", ErrInvalidInput)
	}
	if q == nil || len(q.Conditions) == 0 {
		return nil, fmt.Errorf("%w: query cannot be empty", ErrInvalidInput)
	}

	pool, err := e.scan(sources, q)
	if err != nil {
		return nil, err
	}

	matches, err := ApplyFilter(pool, q)
	if err != nil {
		return nil, err
	}

	duplicates := 0
	if e.dedupe {
		unique, err := dedupe(matches)
		if err != nil {
			return nil, err
		}
		duplicates = len(matches) - len(unique)
		matches = unique
	}

	if len(matches) > 0 && e.sink != nil {
		if err := e.sink.Append(matches); err != nil {
			return nil, err
		}
	}

	e.log.WithFields(logrus.Fields{
		"query":      q.String(),
		"sources":    len(sources),
		"pooled":     len(pool),
		"matches":    len(matches),
		"duplicates": duplicates,
	}).Debug("query executed")

	return &Result{
		Count:          len(matches),
		DuplicateCount: duplicates,
		Records:        matches,
	}, nil
}

// scan reads every source, resolves the query columns against the first
// record of each and returns the records eligible for filtering.
func (e *Engine) scan(sources []Source, q *Query) ([]record.Record, error) {
	columns := q.Columns()
	missing := mapset.NewThreadUnsafeSet[string](columns...)

	var pool []record.Record
	for _, src := range sources {
		records, err := src.Read()
		if err != nil {
			return nil, err
		}

		if len(records) > 0 {
			for _, col := range records[0].Keys() {
				missing.Remove(col)
			}
		}

		pooled := e.pooling == PoolAll || missing.Cardinality() == 0
		if pooled {
			pool = append(pool, records...)
		}

		e.log.WithFields(logrus.Fields{
			"source":  src.Name(),
			"records": len(records),
			"pooled":  pooled,
			"missing": missing.Cardinality(),
		}).Debug("scanned source")
	}

	if missing.Cardinality() > 0 {
		unresolved := make([]string, 0, missing.Cardinality())
		for _, col := range columns {
			if missing.Contains(col) {
				unresolved = append(unresolved, col)
			}
		}
		return nil, &ColumnNotFoundError{Columns: unresolved}
	}

	return pool, nil
}

// dedupe keeps the first of each group of records with identical
// serialized content.
func dedupe(records []record.Record) ([]record.Record, error) {
	seen := make(map[string]bool, len(records))
	unique := make([]record.Record, 0, len(records))
	for _, r := range records {
		key, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		if seen[string(key)] {
			continue
		}
		seen[string(key)] = true
		unique = append(unique, r)
	}
	return unique, nil
}
