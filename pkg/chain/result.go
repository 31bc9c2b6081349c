package chain

import (
	"time"

	"github.com/google/uuid"
)

var _ WithError = Result{}

// Result is the outcome of resolving a list of fallback chains against one
// receiver.
type Result struct {
	id        uuid.UUID
	createdAt time.Time
	value     any
	err       error
	chain     int
}

// Found records value produced by the chain at index.
func Found(value any, chain int) Result {
	return Result{
		value:     value,
		chain:     chain,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// NotFound records that every chain came back empty.
func NotFound() Result {
	return Result{
		chain:     -1,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// Failed records an evaluation error raised while walking the chain at
// index, or -1 when no chain was walked.
func Failed(err error, chain int) Result {
	return Result{
		err:       err,
		chain:     chain,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func (r Result) Value() any {
	return r.value
}

func (r Result) Err() error {
	return r.err
}

// Chain returns the index of the winning or failing chain, -1 if none.
func (r Result) Chain() int {
	return r.chain
}

func (r Result) IsPresent() bool {
	return r.err == nil && r.chain >= 0
}

func (r Result) IsEmpty() bool {
	return r.err == nil && r.chain < 0
}

func (r Result) IsFailure() bool {
	return r.err != nil
}

func (r Result) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result) Id() uuid.UUID {
	return r.id
}
